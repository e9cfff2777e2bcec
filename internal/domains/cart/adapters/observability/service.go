package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/notify"
	cartdomain "github.com/Apurer/rocketshoes-cart/internal/domains/cart/domain"
	cartports "github.com/Apurer/rocketshoes-cart/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
// A mutation that produced user notifications is marked as failed on its span.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Cart(ctx context.Context) cartdomain.Cart {
	ctx, span := s.tracer.Start(ctx, "CartService.Cart")
	defer span.End()

	cart := s.inner.Cart(ctx)
	span.SetAttributes(attribute.Int("cart.size", len(cart)), attribute.Int("cart.item_count", cart.ItemCount()))
	return cart
}

func (s *Service) AddProduct(ctx context.Context, productID int64) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddProduct", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	s.logInfo(ctx, "adding product", slog.Int64("product.id", productID))
	s.observe(ctx, span, "add", productID, func(ctx context.Context) {
		s.inner.AddProduct(ctx, productID)
	})
}

func (s *Service) RemoveProduct(ctx context.Context, productID int64) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveProduct", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	s.logInfo(ctx, "removing product", slog.Int64("product.id", productID))
	s.observe(ctx, span, "remove", productID, func(ctx context.Context) {
		s.inner.RemoveProduct(ctx, productID)
	})
}

func (s *Service) UpdateProductAmount(ctx context.Context, input cartports.UpdateProductAmount) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateProductAmount",
		trace.WithAttributes(attribute.Int64("product.id", input.ProductID), attribute.Int("product.amount", input.Amount)))
	defer span.End()

	s.logInfo(ctx, "updating product amount", slog.Int64("product.id", input.ProductID), slog.Int("amount", input.Amount))
	s.observe(ctx, span, "update", input.ProductID, func(ctx context.Context) {
		s.inner.UpdateProductAmount(ctx, input)
	})
}

// observe runs call under its own notification collector so the outcome can be
// derived from what the user was told.
func (s *Service) observe(ctx context.Context, span trace.Span, op string, productID int64, call func(context.Context)) {
	ctx, collector := notify.WithCollector(ctx)
	call(ctx)

	messages := collector.Messages()
	outcome := "ok"
	if len(messages) > 0 {
		outcome = "rejected"
		span.SetStatus(codes.Error, messages[0])
		span.SetAttributes(attribute.StringSlice("cart.notifications", messages))
		s.logWarn(ctx, "cart operation rejected", slog.String("op", op), slog.Int64("product.id", productID), slog.Any("notifications", messages))
	} else {
		s.logInfo(ctx, "cart operation completed", slog.String("op", op), slog.Int64("product.id", productID))
	}
	s.metrics.recordMutation(ctx, op, outcome)
	for _, msg := range messages {
		s.metrics.recordNotification(ctx, op, msg)
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

type serviceMetrics struct {
	mutations     metric.Int64Counter
	notifications metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("cart.service.mutations", metric.WithDescription("Number of cart mutations by outcome"))
	notifications, _ := m.Int64Counter("cart.service.notifications", metric.WithDescription("Number of user notifications raised"))
	return serviceMetrics{mutations: mutations, notifications: notifications}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op, outcome string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("cart.op", op), attribute.String("cart.outcome", outcome)))
	}
}

func (m serviceMetrics) recordNotification(ctx context.Context, op, message string) {
	if m.notifications != nil {
		m.notifications.Add(ctx, 1, metric.WithAttributes(attribute.String("cart.op", op), attribute.String("notification.message", message)))
	}
}

var _ cartports.Service = (*Service)(nil)

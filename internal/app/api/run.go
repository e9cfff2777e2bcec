package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Apurer/rocketshoes-cart/internal/clients/http/catalog"
	carthttp "github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/http"
	cartmemory "github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/memory"
	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/notify"
	cartobs "github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/persistence/postgres"
	cartredis "github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/persistence/redis"
	cartapp "github.com/Apurer/rocketshoes-cart/internal/domains/cart/application"
	cartports "github.com/Apurer/rocketshoes-cart/internal/domains/cart/ports"
	"github.com/Apurer/rocketshoes-cart/internal/platform/migrations"
	platformobservability "github.com/Apurer/rocketshoes-cart/internal/platform/observability"
	platformpostgres "github.com/Apurer/rocketshoes-cart/internal/platform/postgres"
	platformredis "github.com/Apurer/rocketshoes-cart/internal/platform/redis"
)

const serviceName = "rocketshoes-cart"

// Run boots the cart HTTP API with observability, storage, and the catalog client wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	redisClient := connectRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	storage, cleanupStorage := buildStorage(ctx, cfg, redisClient, logger)
	defer cleanupStorage()

	catalogClient, err := catalog.NewClient(cfg.CatalogBaseURL,
		catalog.WithHTTPClient(&http.Client{
			Timeout:   cfg.CatalogTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
		catalog.WithRateLimit(cfg.CatalogRateLimit, 1),
	)
	if err != nil {
		return fmt.Errorf("failed to build catalog client: %w", err)
	}

	store, err := cartapp.NewStore(ctx, cartapp.Dependencies{
		Storage:   storage,
		Catalog:   catalogClient,
		Inventory: catalogClient,
		Notifier:  buildNotifier(cfg, redisClient, logger),
	},
		cartapp.WithLogger(logger),
		cartapp.WithNamespace(cfg.CartNamespace),
	)
	if err != nil {
		return fmt.Errorf("failed to build cart store: %w", err)
	}
	cartService := cartobs.New(
		store,
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	router := NewRouter(cartService)
	server := &http.Server{Addr: ":" + cfg.Port, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("cart API listening", slog.String("addr", server.Addr), slog.String("catalog", cfg.CatalogBaseURL))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("cart API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down cart API")
		return server.Shutdown(shutdownCtx)
	}
}

// NewRouter mounts the cart API behind recovery, tracing, and request ID middleware.
func NewRouter(service cartports.Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(carthttp.RequestID())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	carthttp.NewCartAPI(service).Register(router)
	return router
}

func connectRedis(ctx context.Context, cfg Config, logger *slog.Logger) *goredis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client, err := platformredis.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("failed to connect to redis", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("redis connection established", slog.String("addr", cfg.RedisAddr))
	return client
}

// buildStorage prefers Redis, then Postgres, then process memory.
func buildStorage(ctx context.Context, cfg Config, redisClient *goredis.Client, logger *slog.Logger) (cartports.Storage, func()) {
	if redisClient != nil {
		logger.Info("cart storage configured with redis")
		return cartredis.NewStorage(redisClient), func() {}
	}
	if cfg.PostgresDSN == "" {
		logger.Warn("REDIS_ADDR and POSTGRES_DSN not usable, falling back to in-memory cart storage")
		return cartmemory.NewStorage(), func() {}
	}
	db, cleanup := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		logger.Warn("postgres unavailable, falling back to in-memory cart storage")
		return cartmemory.NewStorage(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate cart schema, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return cartmemory.NewStorage(), func() {}
	}
	logger.Info("cart storage configured with postgres")
	return cartpostgres.NewStorage(db), cleanup
}

func buildNotifier(cfg Config, redisClient *goredis.Client, logger *slog.Logger) cartports.Notifier {
	sinks := []cartports.Notifier{notify.NewLogSink(logger)}
	if redisClient != nil && !cfg.NotifyDisabled {
		sinks = append(sinks, notify.NewRedisSink(redisClient, cfg.NotifyChannel, logger))
	}
	return notify.NewDispatcher(sinks...)
}

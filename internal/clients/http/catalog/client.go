package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/domain"
	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/ports"
)

var (
	_ ports.Catalog   = (*Client)(nil)
	_ ports.Inventory = (*Client)(nil)
)

// ErrNotFound is wrapped by StatusError for 404 responses.
var ErrNotFound = errors.New("resource not found")

// DefaultTimeout bounds every outbound request when no client is supplied.
const DefaultTimeout = 5 * time.Second

// StatusError reports a non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithRateLimit caps outbound requests per second. Zero or negative disables it.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// Client talks to the catalog (`/products/{id}`) and inventory (`/stock/{id}`)
// endpoints of the storefront API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a client with an otelhttp transport and a 5s timeout.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base URL is required")
	}
	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// GetProduct calls GET /products/{id}.
func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, "/products", id, &product); err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

// GetStock calls GET /stock/{id}.
func (c *Client) GetStock(ctx context.Context, id int64) (domain.Stock, error) {
	var stock domain.Stock
	if err := c.getJSON(ctx, "/stock", id, &stock); err != nil {
		return domain.Stock{}, fmt.Errorf("get stock %d: %w", id, err)
	}
	return stock, nil
}

func (c *Client) getJSON(ctx context.Context, collection string, id int64, dst any) error {
	if c == nil || c.http == nil {
		return errors.New("catalog client not configured")
	}
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return fmt.Errorf("encode id: %w", err)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	url := c.baseURL + collection + "/" + pathParam
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method:     http.MethodGet,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

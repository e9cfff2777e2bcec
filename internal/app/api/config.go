package api

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/notify"
	cartdomain "github.com/Apurer/rocketshoes-cart/internal/domains/cart/domain"
	platformobservability "github.com/Apurer/rocketshoes-cart/internal/platform/observability"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port             string
	CatalogBaseURL   string
	CatalogTimeout   time.Duration
	CatalogRateLimit float64
	CartNamespace    string
	RedisAddr        string
	PostgresDSN      string
	NotifyChannel    string
	NotifyDisabled   bool
	LogLevel         slog.Level
	Environment      string
	OTLPEndpoint     string
	OTLPInsecure     bool
}

// LoadDotEnv loads path into the environment when it exists. Variables that are
// already set win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:           envDefault("PORT", "8080"),
		CatalogBaseURL: envDefault("CATALOG_BASE_URL", "http://localhost:3333"),
		CatalogTimeout: 5 * time.Second,
		CartNamespace:  envDefault("CART_NAMESPACE", cartdomain.DefaultNamespace),
		RedisAddr:      strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		PostgresDSN:    strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		NotifyChannel:  envDefault("NOTIFY_CHANNEL", notify.DefaultChannel),
		NotifyDisabled: isTruthy(os.Getenv("NOTIFY_DISABLED")),
		LogLevel:       platformobservability.ParseLevel(os.Getenv("LOG_LEVEL")),
		Environment:    envDefault("ENVIRONMENT", "local"),
		OTLPEndpoint:   strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:   strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")) != "0",
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("CATALOG_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.CatalogTimeout = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_RATE_LIMIT")); raw != "" {
		limit, err := strconv.ParseFloat(raw, 64)
		if err != nil || limit < 0 {
			return Config{}, fmt.Errorf("CATALOG_RATE_LIMIT must be a non-negative number")
		}
		cfg.CatalogRateLimit = limit
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	platformobservability "github.com/Apurer/rocketshoes-cart/internal/platform/observability"
	"github.com/Apurer/rocketshoes-cart/internal/stub"
)

// catalog-stub serves /products and /stock from STUB_DATA (a json-server style
// document) or from the built-in storefront seed.
func main() {
	logger := platformobservability.NewLogger(os.Stdout, platformobservability.ParseLevel(os.Getenv("LOG_LEVEL"))).
		With(slog.String("service", "catalog-stub"))

	data := stub.Seed()
	if path := strings.TrimSpace(os.Getenv("STUB_DATA")); path != "" {
		loaded, err := stub.Load(path)
		if err != nil {
			log.Fatalf("failed to load stub data from %s: %v", path, err)
		}
		data = loaded
	}

	addr := ":3333"
	if v := os.Getenv("STUB_PORT"); v != "" {
		addr = ":" + v
	}
	handler := otelhttp.NewHandler(stub.NewServer(data, logger), "catalog-stub")
	logger.Info("catalog stub listening", slog.String("addr", addr), slog.Int("products", len(data.ProductIDs())))
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("catalog stub exited: %v", err)
	}
}

//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "storefront-catalog"
	ConsumerName = "rocketshoes-cart"

	StateProductExists  = "product with id 1 is in the catalog"
	StateProductMissing = "no product with id 404"
	StateStockExists    = "product with id 1 has stock"
)

const (
	ExistingProductID int64 = 1
	MissingProductID  int64 = 404
)

// ExampleProductPayload matches the first product of the built-in catalog seed.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":    ExistingProductID,
		"title": "Tênis de Caminhada Leve Confortável",
		"price": 179.9,
		"image": "https://rocketseat-cdn.s3-sa-east-1.amazonaws.com/modulo-redux/tenis1.jpg",
	}
}

// ExampleStockPayload matches the seeded stock of the first product.
func ExampleStockPayload() map[string]any {
	return map[string]any{
		"id":     ExistingProductID,
		"amount": 3,
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the cart consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

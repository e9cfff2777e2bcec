//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/rocketshoes-cart/test/pact"

	"github.com/Apurer/rocketshoes-cart/internal/clients/http/catalog"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

func TestCartCatalogContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	product := pacttest.ExampleProductPayload()
	stock := pacttest.ExampleStockPayload()
	jsonContentType := matchers.Regex("application/json", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request for an existing product").
		WithRequest("GET", fmt.Sprintf("/products/%d", pacttest.ExistingProductID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Accept", matchers.S("application/json"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":    matchers.Like(product["id"]),
				"title": matchers.Like(product["title"]),
				"price": matchers.Like(product["price"]),
				"image": matchers.Like(product["image"]),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateStockExists).
		UponReceiving("a request for the stock of an existing product").
		WithRequest("GET", fmt.Sprintf("/stock/%d", pacttest.ExistingProductID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Accept", matchers.S("application/json"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":     matchers.Like(stock["id"]),
				"amount": matchers.Like(stock["amount"]),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a request for a missing product").
		WithRequest("GET", fmt.Sprintf("/products/%d", pacttest.MissingProductID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Accept", matchers.S("application/json"))
		}).
		WillRespondWith(http.StatusNotFound)

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client, err := catalog.NewClient(fmt.Sprintf("http://%s:%d", config.Host, config.Port))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		got, err := client.GetProduct(ctx, pacttest.ExistingProductID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if got.ID != pacttest.ExistingProductID || got.Title == "" || got.Price.IsZero() {
			return fmt.Errorf("unexpected product %+v", got)
		}

		level, err := client.GetStock(ctx, pacttest.ExistingProductID)
		if err != nil {
			return fmt.Errorf("get stock: %w", err)
		}
		if level.Amount < 1 {
			return fmt.Errorf("expected positive stock, got %d", level.Amount)
		}

		if _, err := client.GetProduct(ctx, pacttest.MissingProductID); !errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("expected not found for product %d, got %v", pacttest.MissingProductID, err)
		}
		return nil
	})
	require.NoError(t, err)
}

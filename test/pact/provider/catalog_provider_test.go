//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/rocketshoes-cart/test/pact"

	"github.com/Apurer/rocketshoes-cart/internal/stub"

	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestCatalogStubProviderPact(t *testing.T) {
	t.Helper()

	server := httptest.NewServer(stub.NewServer(stub.Seed(), nil))
	t.Cleanup(server.Close)

	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	// The seed already satisfies every state.
	noop := func(bool, models.ProviderState) (models.ProviderStateResponse, error) {
		return nil, nil
	}
	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateProductExists:  noop,
			pacttest.StateStockExists:    noop,
			pacttest.StateProductMissing: noop,
		},
	})
	require.NoError(t, err)
}

package stub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_GetProductKeepsUnknownFields(t *testing.T) {
	data, err := Parse([]byte(`{"products":[{"id":7,"title":"Boot","price":10.5,"image":"x","brand":"Acme"}],"stock":[{"id":7,"amount":2}]}`))
	require.NoError(t, err)
	srv := NewServer(data, nil)

	rec := get(t, srv, "/products/7")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"id":7,"title":"Boot","price":10.5,"image":"x","brand":"Acme"}`, rec.Body.String())

	rec = get(t, srv, "/stock/7")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":7,"amount":2}`, rec.Body.String())
}

func TestServer_MissingIDs(t *testing.T) {
	srv := NewServer(Seed(), nil)

	for _, path := range []string{"/products/999", "/stock/999", "/products/abc"} {
		rec := get(t, srv, path)
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		require.JSONEq(t, `{}`, rec.Body.String())
	}
}

func TestServer_ListProductsInDocumentOrder(t *testing.T) {
	srv := NewServer(Seed(), nil)

	rec := get(t, srv, "/products")
	require.Equal(t, http.StatusOK, rec.Code)

	var products []struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 6)
	require.Equal(t, int64(1), products[0].ID)
	require.Equal(t, []int64{1, 2, 3, 4, 5, 6}, Seed().ProductIDs())
}

func TestServer_RejectsOtherMethods(t *testing.T) {
	srv := NewServer(Seed(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products/1", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`{"products":[{"title":"no id"}]}`))
	require.ErrorContains(t, err, "products[0]: missing id")

	_, err = Parse([]byte(`{"stock":[{"id":"x"}]}`))
	require.ErrorContains(t, err, "stock[0]")

	_, err = Parse([]byte(`[`))
	require.ErrorContains(t, err, "decode stub data")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir() + "/missing.json")
	require.Error(t, err)
}

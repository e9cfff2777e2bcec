package carthttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/memory"
	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/notify"
	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/application"
	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/domain"
)

type catalogFake struct {
	products map[int64]domain.Product
	stock    map[int64]int
}

func (f catalogFake) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("not found")
	}
	return p, nil
}

func (f catalogFake) GetStock(_ context.Context, id int64) (domain.Stock, error) {
	amount, ok := f.stock[id]
	if !ok {
		return domain.Stock{}, errors.New("not found")
	}
	return domain.Stock{ID: id, Amount: amount}, nil
}

type cartBody struct {
	Items         []domain.Product `json:"items"`
	Total         json.Number      `json:"total"`
	ItemCount     int              `json:"itemCount"`
	Notifications []string         `json:"notifications"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fake := catalogFake{
		products: map[int64]domain.Product{
			1: {ID: 1, Title: "Tênis de Caminhada", Price: decimal.RequireFromString("179.9")},
			2: {ID: 2, Title: "Tênis VR Caminhada", Price: decimal.RequireFromString("139.9")},
		},
		stock: map[int64]int{1: 3, 2: 1},
	}
	store, err := application.NewStore(context.Background(), application.Dependencies{
		Storage:   cartmemory.NewStorage(),
		Catalog:   fake,
		Inventory: fake,
		Notifier:  notify.NewDispatcher(),
	})
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequestID())
	NewCartAPI(store).Register(router)
	return router
}

func perform(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, cartBody) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded cartBody
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestGetCart_Empty(t *testing.T) {
	router := setupRouter(t)

	rec, body := perform(t, router, http.MethodGet, "/cart", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[],"total":0,"itemCount":0}`, rec.Body.String())
	require.Empty(t, body.Items)
	require.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestAddProduct_ThenTotals(t *testing.T) {
	router := setupRouter(t)

	rec, body := perform(t, router, http.MethodPost, "/cart/items/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, body.Notifications)
	require.Len(t, body.Items, 1)
	require.Equal(t, 1, body.Items[0].Amount)

	_, body = perform(t, router, http.MethodPost, "/cart/items/1", "")
	_, body = perform(t, router, http.MethodPost, "/cart/items/2", "")
	require.Equal(t, 3, body.ItemCount)
	require.Equal(t, "499.7", body.Total.String())
}

func TestAddProduct_ReportsNotifications(t *testing.T) {
	router := setupRouter(t)

	_, body := perform(t, router, http.MethodPost, "/cart/items/99", "")

	require.Equal(t, []string{application.MsgAddFailed, application.MsgStockExceeded}, body.Notifications)
	require.Empty(t, body.Items)
}

func TestUpdateProductAmount(t *testing.T) {
	router := setupRouter(t)
	perform(t, router, http.MethodPost, "/cart/items/1", "")

	rec, body := perform(t, router, http.MethodPut, "/cart/items/1", `{"amount":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, body.Notifications)
	require.Equal(t, 3, body.Items[0].Amount)

	_, body = perform(t, router, http.MethodPut, "/cart/items/1", `{"amount":4}`)
	require.Equal(t, []string{application.MsgStockExceeded}, body.Notifications)
	require.Equal(t, 3, body.Items[0].Amount)
}

func TestUpdateProductAmount_InvalidBody(t *testing.T) {
	router := setupRouter(t)

	for _, payload := range []string{`{}`, `{"amount":"two"}`, `nope`} {
		rec, _ := perform(t, router, http.MethodPut, "/cart/items/1", payload)
		require.Equal(t, http.StatusBadRequest, rec.Code, payload)
		require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	}
}

func TestRemoveProduct(t *testing.T) {
	router := setupRouter(t)
	perform(t, router, http.MethodPost, "/cart/items/1", "")
	perform(t, router, http.MethodPost, "/cart/items/2", "")

	_, body := perform(t, router, http.MethodDelete, "/cart/items/1", "")
	require.Empty(t, body.Notifications)
	require.Len(t, body.Items, 1)
	require.Equal(t, int64(2), body.Items[0].ID)

	_, body = perform(t, router, http.MethodDelete, "/cart/items/1", "")
	require.Equal(t, []string{application.MsgRemoveFailed}, body.Notifications)
}

func TestInvalidProductID(t *testing.T) {
	router := setupRouter(t)

	for _, path := range []string{"/cart/items/abc", "/cart/items/0", "/cart/items/-3"} {
		rec, _ := perform(t, router, http.MethodPost, path, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, path)

		var problem map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
		require.Equal(t, "/problems/bad-request", problem["type"])
		require.Equal(t, path, problem["instance"])
	}
}

func TestRequestID_EchoesCallerValue(t *testing.T) {
	router := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

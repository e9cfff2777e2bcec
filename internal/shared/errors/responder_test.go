package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/cart/items/:id", handler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart/items/x", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRespond_FillsInstanceAndContentType(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		Respond(c, ErrBadRequest.WithDetail("bad id"))
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, "/cart/items/x", body["instance"])
	require.Equal(t, "bad id", body["detail"])
}

func TestResponder_BaseURI(t *testing.T) {
	responder := NewResponder("https://cart.example")
	_, body := serve(t, func(c *gin.Context) {
		responder.Respond(c, NewValidationProblem(map[string]string{"amount": "required"}))
	})

	require.Equal(t, "https://cart.example"+TypeValidation, body["type"])
	require.Equal(t, map[string]any{"fields": map[string]any{"amount": "required"}}, body["extensions"])
}

func TestRespondError(t *testing.T) {
	rec, body := serve(t, func(c *gin.Context) {
		RespondError(c, fmt.Errorf("wrapped: %w", ErrBadRequest))
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, TypeBadRequest, body["type"])

	rec, body = serve(t, func(c *gin.Context) {
		RespondError(c, fmt.Errorf("boom"))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "boom", body["detail"])
}

func TestWithExtension_DoesNotShareMaps(t *testing.T) {
	base := ErrBadRequest.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)

	require.Len(t, base.Extensions, 1)
	require.Len(t, derived.Extensions, 2)
	require.Empty(t, ErrBadRequest.Extensions)
}

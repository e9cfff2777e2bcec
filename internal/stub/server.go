package stub

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Server serves the catalog and inventory endpoints the cart depends on.
type Server struct {
	data   *Data
	logger *slog.Logger
	router *mux.Router
}

// NewServer builds the router. A nil logger discards output.
func NewServer(data *Data, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{data: data, logger: logger, router: mux.NewRouter()}
	s.router.Use(s.logMiddleware)
	s.router.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	s.router.HandleFunc("/products/{id}", s.getProduct).Methods(http.MethodGet)
	s.router.HandleFunc("/stock/{id}", s.getStock).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Products())
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	product, found := s.data.Product(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) getStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	stock, found := s.data.Stock(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, stock)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.DebugContext(r.Context(), "stub request", slog.String("method", r.Method), slog.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		// json-server answers unknown keys with an empty object and 404.
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

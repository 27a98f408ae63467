package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rl1809/rocketcart/internal/port"
)

type HTTPHandler struct {
	source port.StockGateway
	log    *zap.Logger
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func NewHTTPHandler(source port.StockGateway, log *zap.Logger) *HTTPHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPHandler{source: source, log: log}
}

// Routes mirrors the json-server layout the cart gateway expects.
func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.HealthCheck)
	r.Get("/products/{id}", h.Product)
	r.Get("/stock/{id}", h.Stock)
	return r
}

func (h *HTTPHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	p, err := h.source.FetchProduct(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, id, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *HTTPHandler) Stock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	level, err := h.source.FetchStock(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, id, err)
		return
	}
	writeJSON(w, http.StatusOK, level)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) writeLookupError(w http.ResponseWriter, r *http.Request, id int, err error) {
	if errors.Is(err, port.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	h.log.Error("stock lookup failed",
		zap.String("request_id", chimw.GetReqID(r.Context())),
		zap.Int("product_id", id),
		zap.Error(err),
	)
	writeError(w, r, http.StatusServiceUnavailable, "stock service unavailable")
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:     msg,
		RequestID: chimw.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

package handler

import (
	"encoding/json"
	"net/http"

	core "github.com/kyoto-db/kyoto/internal/core/server"
	"github.com/kyoto-db/kyoto/internal/telemetry/logger"
)

// Handler routes admin requests.
type Handler struct {
	srv     *core.Server
	metrics http.Handler
	logger  logger.Logger
	mux     *http.ServeMux
}

// New creates a Handler reading from srv. metrics may be nil.
func New(srv *core.Server, metrics http.Handler, log logger.Logger) *Handler {
	h := &Handler{
		srv:     srv,
		metrics: metrics,
		logger:  log,
		mux:     http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /healthz", h.handleHealth)
	h.mux.HandleFunc("GET /readyz", h.handleReady)
	h.mux.HandleFunc("GET /info", h.handleInfo)
	h.mux.HandleFunc("GET /stats", h.handleStats)
	if h.metrics != nil {
		h.mux.Handle("GET /metrics", h.metrics)
	}
}

// writeJSON writes a JSON response with the standard envelope.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(w, r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with the standard envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := getRequestID(w, r)
	response := NewErrorResponse(requestID, code, message)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// getRequestID returns the ID set by the RequestID middleware, falling back
// to the incoming header.
func getRequestID(w http.ResponseWriter, r *http.Request) string {
	if reqID := w.Header().Get("X-Request-ID"); reqID != "" {
		return reqID
	}
	return r.Header.Get("X-Request-ID")
}

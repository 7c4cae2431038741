package handler

import (
	"net/http"

	"github.com/kyoto-db/kyoto/internal/core/domain"
	"github.com/kyoto-db/kyoto/internal/protocol"
)

// handleInfo handles GET /info by running INFO on a clone of the server.
func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	if h.srv == nil {
		h.writeError(w, r, http.StatusServiceUnavailable, "NOT_READY", "server not initialized")
		return
	}

	ret, err := h.srv.Clone().Execute(protocol.Info{})
	if err != nil {
		h.logger.Error("info failed", "error", err)
		h.writeError(w, r, http.StatusInternalServerError, domain.GetErrorCode(err), err.Error())
		return
	}

	rr, ok := ret.(protocol.ReturnResponse)
	if !ok {
		h.writeError(w, r, http.StatusInternalServerError, domain.ErrInternal.Code, domain.ErrInternal.Message)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(rr.Response.Payload())
}

// handleStats handles GET /stats.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if h.srv == nil {
		h.writeError(w, r, http.StatusServiceUnavailable, "NOT_READY", "server not initialized")
		return
	}
	h.writeJSON(w, r, http.StatusOK, h.srv.Stats())
}

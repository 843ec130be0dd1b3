package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/service"
)

// HistoryHandler handles HTTP requests for generation history.
type HistoryHandler struct {
	service *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// HandleHistory handles GET /api/v1/history requests.
func (h *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.ClientFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	resp, err := h.service.List(r.Context(), client, limit)
	if err != nil {
		if errors.Is(err, service.ErrHistoryUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse(err.Error()))
			return
		}
		slog.Error("listing generation history", "client", client, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

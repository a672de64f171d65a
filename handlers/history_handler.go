package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cineapp/services"
)

type HistoryHandler struct {
	history *services.HistoryService
}

func NewHistoryHandler(history *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// ListHistory - The user's purchase/cancellation entries, newest first
func (h *HistoryHandler) ListHistory(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Sign in to view your history", nil)
	}

	entries, err := h.history.ListUserHistory(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"entries": entries,
		"total":   len(entries),
	})
}

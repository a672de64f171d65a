package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cineapp/services"
	"cineapp/store"
)

type TicketHandler struct {
	store   store.Store
	tickets *services.TicketService
}

func NewTicketHandler(st store.Store, tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{
		store:   st,
		tickets: tickets,
	}
}

// Purchase - Buy tickets for a showtime
func (h *TicketHandler) Purchase(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Sign in to buy tickets", nil)
	}

	var req struct {
		ShowtimeID  string `json:"showtime_id"`
		TicketCount int    `json:"ticket_count"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ctx := e.Request.Context()

	showtime, err := h.store.GetShowtime(ctx, req.ShowtimeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apis.NewNotFoundError("Showtime not found", err)
		}
		return apiError(err)
	}
	movie, err := h.store.GetMovie(ctx, showtime.MovieID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apis.NewNotFoundError("Movie not found", err)
		}
		return apiError(err)
	}

	if err := h.tickets.Purchase(ctx, e.Auth.Id, showtime, movie, req.TicketCount); err != nil {
		return apiError(err)
	}

	// Fresh read so the UI can render the post-purchase seat count.
	fresh, err := h.store.GetShowtime(ctx, req.ShowtimeID)
	if err != nil {
		fresh = showtime
	}

	return e.JSON(http.StatusOK, map[string]any{
		"message":         "Tickets purchased",
		"showtime_id":     req.ShowtimeID,
		"ticket_count":    req.TicketCount,
		"available_seats": fresh.AvailableSeats,
	})
}

// Cancel - Cancel a purchased history entry and refund its seats
func (h *TicketHandler) Cancel(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Sign in to cancel tickets", nil)
	}

	var req struct {
		HistoryEntryID string `json:"history_entry_id"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ctx := e.Request.Context()

	entry, err := h.store.GetHistoryEntry(ctx, req.HistoryEntryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apis.NewNotFoundError("History entry not found", err)
		}
		return apiError(err)
	}
	if entry.UserID != e.Auth.Id {
		return apis.NewForbiddenError("This history entry belongs to another user", nil)
	}

	if err := h.tickets.Cancel(ctx, e.Auth.Id, entry); err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"message":          "Tickets cancelled",
		"history_entry_id": req.HistoryEntryID,
		"ticket_count":     entry.NumberOfTickets,
	})
}

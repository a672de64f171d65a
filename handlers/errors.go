package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"

	"cineapp/status"
)

// apiError maps a service failure to the HTTP answer the UI renders.
// Every terminal failure carries a short human-readable message; the
// UI never retries on its own.
func apiError(err error) error {
	switch {
	case errors.Is(err, status.ErrNotAuthenticated):
		return apis.NewUnauthorizedError("Sign in to continue", err)
	case errors.Is(err, status.ErrShowtimeNotFound):
		return apis.NewNotFoundError("Showtime not found", err)
	case errors.Is(err, status.ErrMovieNotFound):
		return apis.NewNotFoundError("Movie not found", err)
	case errors.Is(err, status.ErrHistoryEntryNotFound):
		return apis.NewNotFoundError("History entry not found", err)
	case errors.Is(err, status.ErrHistoryEntryForbidden):
		return apis.NewForbiddenError("This history entry belongs to another user", err)
	case errors.Is(err, status.ErrInsufficientSeats):
		return apis.NewBadRequestError("Not enough seats available", err)
	case errors.Is(err, status.ErrInvalidTicketCount):
		return apis.NewBadRequestError("Ticket count must be at least 1", err)
	case errors.Is(err, status.ErrNotCancellable):
		return apis.NewBadRequestError("Only purchased tickets can be cancelled", err)
	case errors.Is(err, status.ErrInvalidRating):
		return apis.NewBadRequestError("Rating must be between 1 and 5", err)
	case errors.Is(err, status.ErrEmptyComment):
		return apis.NewBadRequestError("Please write a comment", err)
	case errors.Is(err, status.ErrScreeningNotFinished):
		return apis.NewBadRequestError("You can review this screening after it has finished", err)
	case errors.Is(err, status.ErrReviewRequiresTicket):
		return apis.NewBadRequestError("Only purchased screenings can be reviewed", err)
	default:
		return apis.NewApiError(http.StatusInternalServerError, "Something went wrong", err)
	}
}

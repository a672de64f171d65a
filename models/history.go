package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	HistoryActionPurchased = "purchased"
	HistoryActionCancelled = "cancelled"
)

// UserHistoryEntry is a user-visible record of a purchase or cancellation.
// Entries are append-only: a cancellation never rewrites the purchase entry,
// it appends a new one with action "cancelled".
//
// ShowtimeStartTime and DurationMinutes are denormalized so callers can
// decide whether the screening has finished without extra lookups.
type UserHistoryEntry struct {
	ID                string          `json:"id"`
	OperationID       string          `json:"operationId"`
	UserID            string          `json:"userId"`
	MovieID           string          `json:"movieId"`
	ShowtimeID        string          `json:"showtimeId"`
	Action            string          `json:"action"`
	ActionDate        time.Time       `json:"actionDate"`
	Details           string          `json:"details"`
	MoviePosterURL    string          `json:"moviePosterUrl"`
	NumberOfTickets   int             `json:"numberOfTickets"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	ShowtimeStartTime time.Time       `json:"showtimeStartTime"`
	DurationMinutes   int             `json:"durationMinutes"`
}

// Cancellable reports whether this entry can still be cancelled.
// Only purchase entries qualify; a cancellation entry cannot be
// cancelled again.
func (e *UserHistoryEntry) Cancellable() bool {
	return e.Action == HistoryActionPurchased
}

// ScreeningFinished reports whether the screening this entry refers to
// has ended by now. Reviews are only accepted after the screening.
func (e *UserHistoryEntry) ScreeningFinished(now time.Time) bool {
	end := e.ShowtimeStartTime.Add(time.Duration(e.DurationMinutes) * time.Minute)
	return end.Before(now)
}

package status

import "errors"

var (
	ErrNotAuthenticated   = errors.New("ticket: sign in required")
	ErrInvalidTicketCount = errors.New("ticket: ticket count must be at least 1")
	ErrInsufficientSeats  = errors.New("inventory: not enough seats available")
	ErrShowtimeNotFound   = errors.New("inventory: showtime not found")
	ErrMovieNotFound      = errors.New("catalog: movie not found")
	ErrNotCancellable     = errors.New("ticket: only purchased tickets can be cancelled")

	ErrInvalidRating         = errors.New("review: rating must be between 1 and 5")
	ErrReviewRequiresTicket  = errors.New("review: only purchased screenings can be reviewed")
	ErrEmptyComment          = errors.New("review: comment must not be empty")
	ErrScreeningNotFinished  = errors.New("review: screening has not finished yet")
	ErrHistoryEntryNotFound  = errors.New("history: entry not found")
	ErrHistoryEntryForbidden = errors.New("history: entry belongs to another user")

	// ErrRecorderWrite marks a failed ledger append after the seat
	// adjustment already committed. It is logged and counted, never
	// surfaced as an operation failure.
	ErrRecorderWrite = errors.New("ledger: recording failed")
)

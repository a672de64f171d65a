// Package store is the document-store boundary: point reads, the catalog
// queries, append-only ledger writes and the atomic showtime update that
// every seat mutation must go through.
package store

import (
	"context"
	"errors"
	"time"

	"cineapp/models"
)

// ErrNotFound is returned for point reads of missing documents.
var ErrNotFound = errors.New("store: record not found")

type Store interface {
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	GetShowtime(ctx context.Context, id string) (*models.Showtime, error)
	GetTheater(ctx context.Context, id string) (*models.Theater, error)
	GetHistoryEntry(ctx context.Context, id string) (*models.UserHistoryEntry, error)

	// ListAvailableMovies returns movies flagged available.
	ListAvailableMovies(ctx context.Context) ([]*models.Movie, error)
	// ListUpcomingShowtimes returns a movie's showtimes starting at or
	// after from, ordered by start time ascending.
	ListUpcomingShowtimes(ctx context.Context, movieID string, from time.Time) ([]*models.Showtime, error)

	// UpdateShowtimeAtomic runs fn against a fresh read of the showtime
	// inside a single store transaction and persists the seat count fn
	// leaves behind. An error from fn aborts the transaction. Returns
	// ErrNotFound when the showtime does not exist at transaction time.
	//
	// This is the only way availableSeats may be written.
	UpdateShowtimeAtomic(ctx context.Context, id string, fn func(*models.Showtime) error) error

	// AppendTransaction and AppendHistory upsert by OperationID, so a
	// retried recording overwrites its earlier attempt instead of
	// duplicating ledger rows.
	AppendTransaction(ctx context.Context, txn *models.Transaction) error
	AppendHistory(ctx context.Context, entry *models.UserHistoryEntry) error

	// ListUserHistory returns the user's entries ordered by action date
	// descending.
	ListUserHistory(ctx context.Context, userID string) ([]*models.UserHistoryEntry, error)
	// FindHistoryByOperationID returns the history entry recorded under
	// the operation id, or (nil, nil) when none exists.
	FindHistoryByOperationID(ctx context.Context, operationID string) (*models.UserHistoryEntry, error)

	CreateReview(ctx context.Context, review *models.Review) error
	ListMovieReviews(ctx context.Context, movieID string) ([]*models.Review, error)
}

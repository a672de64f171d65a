package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"cineapp/models"
)

// PBStore implements Store on top of a PocketBase app. The collections
// mirror the logical schema one to one; field names are contract-bearing
// and shared with the migrations.
type PBStore struct {
	app core.App
}

func NewPBStore(app core.App) *PBStore {
	return &PBStore{app: app}
}

func (s *PBStore) GetMovie(_ context.Context, id string) (*models.Movie, error) {
	record, err := s.app.FindRecordById("movies", id)
	if err != nil {
		return nil, wrapLookupErr("movie", id, err)
	}
	return movieFromRecord(record), nil
}

func (s *PBStore) GetShowtime(_ context.Context, id string) (*models.Showtime, error) {
	record, err := s.app.FindRecordById("showtimes", id)
	if err != nil {
		return nil, wrapLookupErr("showtime", id, err)
	}
	return showtimeFromRecord(record), nil
}

func (s *PBStore) GetTheater(_ context.Context, id string) (*models.Theater, error) {
	record, err := s.app.FindRecordById("theaters", id)
	if err != nil {
		return nil, wrapLookupErr("theater", id, err)
	}
	return &models.Theater{
		ID:       record.Id,
		Name:     record.GetString("name"),
		Capacity: record.GetInt("capacity"),
	}, nil
}

func (s *PBStore) GetHistoryEntry(_ context.Context, id string) (*models.UserHistoryEntry, error) {
	record, err := s.app.FindRecordById("userHistory", id)
	if err != nil {
		return nil, wrapLookupErr("history entry", id, err)
	}
	return historyFromRecord(record), nil
}

func (s *PBStore) ListAvailableMovies(_ context.Context) ([]*models.Movie, error) {
	records, err := s.app.FindRecordsByFilter(
		"movies",
		"available = true",
		"title",
		-1,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	movies := make([]*models.Movie, 0, len(records))
	for _, record := range records {
		movies = append(movies, movieFromRecord(record))
	}
	return movies, nil
}

func (s *PBStore) ListUpcomingShowtimes(_ context.Context, movieID string, from time.Time) ([]*models.Showtime, error) {
	records, err := s.app.FindRecordsByFilter(
		"showtimes",
		"movieId = {:movieId} && startTime >= {:from}",
		"startTime",
		-1,
		0,
		dbx.Params{"movieId": movieID, "from": from.UTC()},
	)
	if err != nil {
		return nil, fmt.Errorf("list showtimes for movie %s: %w", movieID, err)
	}

	showtimes := make([]*models.Showtime, 0, len(records))
	for _, record := range records {
		showtimes = append(showtimes, showtimeFromRecord(record))
	}
	return showtimes, nil
}

func (s *PBStore) UpdateShowtimeAtomic(_ context.Context, id string, fn func(*models.Showtime) error) error {
	return s.app.RunInTransaction(func(txApp core.App) error {
		record, err := txApp.FindRecordById("showtimes", id)
		if err != nil {
			return wrapLookupErr("showtime", id, err)
		}

		showtime := showtimeFromRecord(record)
		if err := fn(showtime); err != nil {
			return err
		}

		record.Set("availableSeats", showtime.AvailableSeats)
		return txApp.Save(record)
	})
}

func (s *PBStore) AppendTransaction(_ context.Context, txn *models.Transaction) error {
	record, err := s.findByOperationID("transactions", txn.OperationID)
	if err != nil {
		return err
	}
	if record == nil {
		collection, err := s.app.FindCollectionByNameOrId("transactions")
		if err != nil {
			return fmt.Errorf("transactions collection: %w", err)
		}
		record = core.NewRecord(collection)
	}

	record.Set("operationId", txn.OperationID)
	record.Set("userId", txn.UserID)
	record.Set("showtimeId", txn.ShowtimeID)
	record.Set("movieId", txn.MovieID)
	record.Set("numberOfTickets", txn.NumberOfTickets)
	record.Set("totalAmount", txn.TotalAmount.InexactFloat64())
	record.Set("transactionDate", txn.TransactionDate.UTC())
	record.Set("transactionType", txn.TransactionType)
	record.Set("status", txn.Status)

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	txn.ID = record.Id
	return nil
}

func (s *PBStore) AppendHistory(_ context.Context, entry *models.UserHistoryEntry) error {
	record, err := s.findByOperationID("userHistory", entry.OperationID)
	if err != nil {
		return err
	}
	if record == nil {
		collection, err := s.app.FindCollectionByNameOrId("userHistory")
		if err != nil {
			return fmt.Errorf("userHistory collection: %w", err)
		}
		record = core.NewRecord(collection)
	}

	record.Set("operationId", entry.OperationID)
	record.Set("userId", entry.UserID)
	record.Set("movieId", entry.MovieID)
	record.Set("showtimeId", entry.ShowtimeID)
	record.Set("action", entry.Action)
	record.Set("actionDate", entry.ActionDate.UTC())
	record.Set("details", entry.Details)
	record.Set("moviePosterUrl", entry.MoviePosterURL)
	record.Set("numberOfTickets", entry.NumberOfTickets)
	record.Set("totalAmount", entry.TotalAmount.InexactFloat64())
	record.Set("showtimeStartTime", entry.ShowtimeStartTime.UTC())
	record.Set("durationMinutes", entry.DurationMinutes)

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	entry.ID = record.Id
	return nil
}

func (s *PBStore) ListUserHistory(_ context.Context, userID string) ([]*models.UserHistoryEntry, error) {
	records, err := s.app.FindRecordsByFilter(
		"userHistory",
		"userId = {:userId}",
		"-actionDate",
		-1,
		0,
		dbx.Params{"userId": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("list history for user %s: %w", userID, err)
	}

	entries := make([]*models.UserHistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, historyFromRecord(record))
	}
	return entries, nil
}

func (s *PBStore) FindHistoryByOperationID(_ context.Context, operationID string) (*models.UserHistoryEntry, error) {
	record, err := s.findByOperationID("userHistory", operationID)
	if err != nil || record == nil {
		return nil, err
	}
	return historyFromRecord(record), nil
}

func (s *PBStore) CreateReview(_ context.Context, review *models.Review) error {
	collection, err := s.app.FindCollectionByNameOrId("reviews")
	if err != nil {
		return fmt.Errorf("reviews collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("userId", review.UserID)
	record.Set("movieId", review.MovieID)
	record.Set("showtimeId", review.ShowtimeID)
	record.Set("rating", review.Rating)
	record.Set("comment", review.Comment)
	record.Set("reviewDate", review.ReviewDate.UTC())
	record.Set("mediaUrl", review.MediaURL)
	record.Set("mediaType", review.MediaType)
	record.Set("movieTitle", review.MovieTitle)
	record.Set("moviePosterUrl", review.MoviePosterURL)

	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	review.ID = record.Id
	return nil
}

func (s *PBStore) ListMovieReviews(_ context.Context, movieID string) ([]*models.Review, error) {
	records, err := s.app.FindRecordsByFilter(
		"reviews",
		"movieId = {:movieId}",
		"-reviewDate",
		-1,
		0,
		dbx.Params{"movieId": movieID},
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews for movie %s: %w", movieID, err)
	}

	reviews := make([]*models.Review, 0, len(records))
	for _, record := range records {
		reviews = append(reviews, reviewFromRecord(record))
	}
	return reviews, nil
}

func (s *PBStore) findByOperationID(collection, operationID string) (*core.Record, error) {
	record, err := s.app.FindFirstRecordByFilter(
		collection,
		"operationId = {:op}",
		dbx.Params{"op": operationID},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup %s by operation id: %w", collection, err)
	}
	return record, nil
}

func wrapLookupErr(kind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("get %s %s: %w", kind, id, err)
}

func movieFromRecord(record *core.Record) *models.Movie {
	return &models.Movie{
		ID:              record.Id,
		Title:           record.GetString("title"),
		Description:     record.GetString("description"),
		Genre:           record.GetString("genre"),
		PosterURL:       record.GetString("posterUrl"),
		DurationMinutes: record.GetInt("durationMinutes"),
		Available:       record.GetBool("available"),
	}
}

func showtimeFromRecord(record *core.Record) *models.Showtime {
	return &models.Showtime{
		ID:             record.Id,
		MovieID:        record.GetString("movieId"),
		TheaterID:      record.GetString("theaterId"),
		StartTime:      record.GetDateTime("startTime").Time(),
		EndTime:        record.GetDateTime("endTime").Time(),
		Price:          decimal.NewFromFloat(record.GetFloat("price")),
		AvailableSeats: record.GetInt("availableSeats"),
	}
}

func historyFromRecord(record *core.Record) *models.UserHistoryEntry {
	return &models.UserHistoryEntry{
		ID:                record.Id,
		OperationID:       record.GetString("operationId"),
		UserID:            record.GetString("userId"),
		MovieID:           record.GetString("movieId"),
		ShowtimeID:        record.GetString("showtimeId"),
		Action:            record.GetString("action"),
		ActionDate:        record.GetDateTime("actionDate").Time(),
		Details:           record.GetString("details"),
		MoviePosterURL:    record.GetString("moviePosterUrl"),
		NumberOfTickets:   record.GetInt("numberOfTickets"),
		TotalAmount:       decimal.NewFromFloat(record.GetFloat("totalAmount")),
		ShowtimeStartTime: record.GetDateTime("showtimeStartTime").Time(),
		DurationMinutes:   record.GetInt("durationMinutes"),
	}
}

func reviewFromRecord(record *core.Record) *models.Review {
	return &models.Review{
		ID:             record.Id,
		UserID:         record.GetString("userId"),
		MovieID:        record.GetString("movieId"),
		ShowtimeID:     record.GetString("showtimeId"),
		Rating:         record.GetInt("rating"),
		Comment:        record.GetString("comment"),
		ReviewDate:     record.GetDateTime("reviewDate").Time(),
		MediaURL:       record.GetString("mediaUrl"),
		MediaType:      record.GetString("mediaType"),
		MovieTitle:     record.GetString("movieTitle"),
		MoviePosterURL: record.GetString("moviePosterUrl"),
	}
}

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"cineapp/models"
)

// MemoryStore is a mutex-guarded in-memory Store with the same contract
// as PBStore: the showtime update is atomic with respect to concurrent
// callers and the ledger appends upsert by operation id. Used by the
// service tests and as a fixture for local development.
type MemoryStore struct {
	mu sync.RWMutex

	movies    map[string]*models.Movie
	showtimes map[string]*models.Showtime
	theaters  map[string]*models.Theater

	transactions []*models.Transaction
	history      []*models.UserHistoryEntry
	reviews      []*models.Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		movies:    make(map[string]*models.Movie),
		showtimes: make(map[string]*models.Showtime),
		theaters:  make(map[string]*models.Theater),
	}
}

func (s *MemoryStore) PutMovie(movie *models.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *movie
	s.movies[movie.ID] = &copied
}

func (s *MemoryStore) PutShowtime(showtime *models.Showtime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *showtime
	s.showtimes[showtime.ID] = &copied
}

func (s *MemoryStore) PutTheater(theater *models.Theater) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *theater
	s.theaters[theater.ID] = &copied
}

func (s *MemoryStore) GetMovie(_ context.Context, id string) (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movie, ok := s.movies[id]
	if !ok {
		return nil, fmt.Errorf("movie %s: %w", id, ErrNotFound)
	}
	copied := *movie
	return &copied, nil
}

func (s *MemoryStore) GetShowtime(_ context.Context, id string) (*models.Showtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	showtime, ok := s.showtimes[id]
	if !ok {
		return nil, fmt.Errorf("showtime %s: %w", id, ErrNotFound)
	}
	copied := *showtime
	return &copied, nil
}

func (s *MemoryStore) GetTheater(_ context.Context, id string) (*models.Theater, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	theater, ok := s.theaters[id]
	if !ok {
		return nil, fmt.Errorf("theater %s: %w", id, ErrNotFound)
	}
	copied := *theater
	return &copied, nil
}

func (s *MemoryStore) GetHistoryEntry(_ context.Context, id string) (*models.UserHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.history {
		if entry.ID == id {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("history entry %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) ListAvailableMovies(_ context.Context) ([]*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movies := make([]*models.Movie, 0, len(s.movies))
	for _, movie := range s.movies {
		if movie.Available {
			copied := *movie
			movies = append(movies, &copied)
		}
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].Title < movies[j].Title })
	return movies, nil
}

func (s *MemoryStore) ListUpcomingShowtimes(_ context.Context, movieID string, from time.Time) ([]*models.Showtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	showtimes := make([]*models.Showtime, 0)
	for _, showtime := range s.showtimes {
		if showtime.MovieID == movieID && !showtime.StartTime.Before(from) {
			copied := *showtime
			showtimes = append(showtimes, &copied)
		}
	}
	sort.Slice(showtimes, func(i, j int) bool {
		return showtimes[i].StartTime.Before(showtimes[j].StartTime)
	})
	return showtimes, nil
}

func (s *MemoryStore) UpdateShowtimeAtomic(_ context.Context, id string, fn func(*models.Showtime) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	showtime, ok := s.showtimes[id]
	if !ok {
		return fmt.Errorf("showtime %s: %w", id, ErrNotFound)
	}

	working := *showtime
	if err := fn(&working); err != nil {
		return err
	}

	s.showtimes[id] = &working
	return nil
}

func (s *MemoryStore) AppendTransaction(_ context.Context, txn *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *txn
	for i, existing := range s.transactions {
		if existing.OperationID == copied.OperationID {
			copied.ID = existing.ID
			s.transactions[i] = &copied
			txn.ID = copied.ID
			return nil
		}
	}

	if copied.ID == "" {
		copied.ID = uuid.New().String()
	}
	s.transactions = append(s.transactions, &copied)
	txn.ID = copied.ID
	return nil
}

func (s *MemoryStore) AppendHistory(_ context.Context, entry *models.UserHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *entry
	for i, existing := range s.history {
		if existing.OperationID == copied.OperationID {
			copied.ID = existing.ID
			s.history[i] = &copied
			entry.ID = copied.ID
			return nil
		}
	}

	if copied.ID == "" {
		copied.ID = uuid.New().String()
	}
	s.history = append(s.history, &copied)
	entry.ID = copied.ID
	return nil
}

func (s *MemoryStore) ListUserHistory(_ context.Context, userID string) ([]*models.UserHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*models.UserHistoryEntry, 0)
	for _, entry := range s.history {
		if entry.UserID == userID {
			copied := *entry
			entries = append(entries, &copied)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ActionDate.After(entries[j].ActionDate)
	})
	return entries, nil
}

func (s *MemoryStore) FindHistoryByOperationID(_ context.Context, operationID string) (*models.UserHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.history {
		if entry.OperationID == operationID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateReview(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *review
	if copied.ID == "" {
		copied.ID = uuid.New().String()
	}
	s.reviews = append(s.reviews, &copied)
	review.ID = copied.ID
	return nil
}

func (s *MemoryStore) ListMovieReviews(_ context.Context, movieID string) ([]*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]*models.Review, 0)
	for _, review := range s.reviews {
		if review.MovieID == movieID {
			copied := *review
			reviews = append(reviews, &copied)
		}
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].ReviewDate.After(reviews[j].ReviewDate)
	})
	return reviews, nil
}

// Transactions returns a snapshot of the transaction log, newest last.
func (s *MemoryStore) Transactions() []*models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Transaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		copied := *txn
		out = append(out, &copied)
	}
	return out
}

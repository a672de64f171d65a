package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"cineapp/models"
	"cineapp/status"
	"cineapp/store"
)

const (
	movieListCacheKey    = "catalog:movies"
	movieDetailsCachePfx = "catalog:movie:"
)

// MovieListItem is a movie joined with its earliest upcoming showtime
// and that showtime's theater, the shape the browse screen renders.
type MovieListItem struct {
	Movie            *models.Movie    `json:"movie"`
	EarliestShowtime *models.Showtime `json:"earliestShowtime"`
	TheaterName      string           `json:"theaterName"`
}

type ShowtimeWithTheater struct {
	Showtime *models.Showtime `json:"showtime"`
	Theater  *models.Theater  `json:"theater"`
}

type MovieDetails struct {
	Movie     *models.Movie         `json:"movie"`
	Showtimes []ShowtimeWithTheater `json:"showtimes"`
}

// CatalogService serves the read-only browse projections with a
// read-through Redis cache. Redis is optional: a nil client or a cache
// failure degrades to direct store reads.
type CatalogService struct {
	store  store.Store
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func NewCatalogService(st store.Store, redisClient *redis.Client, ttl time.Duration, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  st,
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// ListMovies returns available movies that have at least one upcoming
// showtime whose theater exists; the rest are omitted, matching what
// the browse screen can render.
func (s *CatalogService) ListMovies(ctx context.Context) ([]MovieListItem, error) {
	var cached []MovieListItem
	if s.cacheGet(ctx, movieListCacheKey, &cached) {
		return cached, nil
	}

	movies, err := s.store.ListAvailableMovies(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]MovieListItem, 0, len(movies))
	for _, movie := range movies {
		showtimes, err := s.store.ListUpcomingShowtimes(ctx, movie.ID, now)
		if err != nil {
			return nil, err
		}
		if len(showtimes) == 0 {
			continue
		}

		earliest := showtimes[0]
		theater, err := s.store.GetTheater(ctx, earliest.TheaterID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}

		items = append(items, MovieListItem{
			Movie:            movie,
			EarliestShowtime: earliest,
			TheaterName:      theater.Name,
		})
	}

	s.cacheSet(ctx, movieListCacheKey, items)
	return items, nil
}

// MovieDetails returns a movie with its upcoming showtimes, each paired
// with its theater. Showtimes whose theater is missing are skipped.
func (s *CatalogService) MovieDetails(ctx context.Context, movieID string) (*MovieDetails, error) {
	key := movieDetailsCachePfx + movieID
	var cached MovieDetails
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	movie, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.ErrMovieNotFound
		}
		return nil, err
	}

	showtimes, err := s.store.ListUpcomingShowtimes(ctx, movieID, s.now())
	if err != nil {
		return nil, err
	}

	details := &MovieDetails{
		Movie:     movie,
		Showtimes: make([]ShowtimeWithTheater, 0, len(showtimes)),
	}
	for _, showtime := range showtimes {
		theater, err := s.store.GetTheater(ctx, showtime.TheaterID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		details.Showtimes = append(details.Showtimes, ShowtimeWithTheater{
			Showtime: showtime,
			Theater:  theater,
		})
	}

	s.cacheSet(ctx, key, details)
	return details, nil
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.redis == nil {
		return false
	}
	data, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("catalog cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		s.logger.Warn("catalog cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value any) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, string(data), s.ttl).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
}

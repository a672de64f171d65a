package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineapp/models"
	"cineapp/status"
	"cineapp/store"
)

func newCatalogStore(now time.Time) *store.MemoryStore {
	st := store.NewMemoryStore()

	st.PutTheater(&models.Theater{ID: "theater-1", Name: "Grand Hall", Capacity: 100})

	st.PutMovie(&models.Movie{ID: "movie-1", Title: "Dune", Available: true})
	st.PutShowtime(&models.Showtime{
		ID:             "showtime-1",
		MovieID:        "movie-1",
		TheaterID:      "theater-1",
		StartTime:      now.Add(2 * time.Hour),
		Price:          decimal.NewFromInt(20000),
		AvailableSeats: 50,
	})
	st.PutShowtime(&models.Showtime{
		ID:             "showtime-2",
		MovieID:        "movie-1",
		TheaterID:      "theater-1",
		StartTime:      now.Add(5 * time.Hour),
		Price:          decimal.NewFromInt(20000),
		AvailableSeats: 50,
	})

	// Available but nothing scheduled, so invisible to browsing.
	st.PutMovie(&models.Movie{ID: "movie-2", Title: "Heat", Available: true})

	// Scheduled but withdrawn from sale.
	st.PutMovie(&models.Movie{ID: "movie-3", Title: "Tenet", Available: false})
	st.PutShowtime(&models.Showtime{
		ID:        "showtime-3",
		MovieID:   "movie-3",
		TheaterID: "theater-1",
		StartTime: now.Add(3 * time.Hour),
	})

	return st
}

func newCatalogService(st *store.MemoryStore, now time.Time) *CatalogService {
	svc := NewCatalogService(st, nil, time.Minute, testLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestListMoviesWithoutCache(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	svc := newCatalogService(newCatalogStore(now), now)

	items, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "movie-1", item.Movie.ID)
	assert.Equal(t, "showtime-1", item.EarliestShowtime.ID, "earliest upcoming showtime wins")
	assert.Equal(t, "Grand Hall", item.TheaterName)
}

func TestListMoviesSkipsMissingTheater(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	st := store.NewMemoryStore()
	st.PutMovie(&models.Movie{ID: "movie-1", Title: "Dune", Available: true})
	st.PutShowtime(&models.Showtime{
		ID:        "showtime-1",
		MovieID:   "movie-1",
		TheaterID: "theater-missing",
		StartTime: now.Add(time.Hour),
	})
	svc := newCatalogService(st, now)

	items, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMovieDetailsPairsShowtimesWithTheaters(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	svc := newCatalogService(newCatalogStore(now), now)

	details, err := svc.MovieDetails(context.Background(), "movie-1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", details.Movie.Title)
	require.Len(t, details.Showtimes, 2)
	assert.Equal(t, "showtime-1", details.Showtimes[0].Showtime.ID)
	assert.Equal(t, "showtime-2", details.Showtimes[1].Showtime.ID)
	assert.Equal(t, "Grand Hall", details.Showtimes[0].Theater.Name)
}

func TestMovieDetailsUnknownMovie(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	svc := newCatalogService(newCatalogStore(now), now)

	_, err := svc.MovieDetails(context.Background(), "movie-missing")
	assert.ErrorIs(t, err, status.ErrMovieNotFound)
}

func TestListMoviesServedFromCache(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	client, mock := redismock.NewClientMock()

	cached := []MovieListItem{{
		Movie:       &models.Movie{ID: "movie-9", Title: "Cached"},
		TheaterName: "From Cache",
		EarliestShowtime: &models.Showtime{
			ID:      "showtime-9",
			MovieID: "movie-9",
		},
	}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	mock.ExpectGet(movieListCacheKey).SetVal(string(payload))

	// Empty store proves the response came from Redis.
	svc := NewCatalogService(store.NewMemoryStore(), client, time.Minute, testLogger())
	svc.now = func() time.Time { return now }

	items, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "movie-9", items[0].Movie.ID)
	assert.Equal(t, "From Cache", items[0].TheaterName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMoviesPopulatesCacheOnMiss(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	client, mock := redismock.NewClientMock()

	mock.ExpectGet(movieListCacheKey).RedisNil()
	mock.Regexp().ExpectSet(movieListCacheKey, `.*movie-1.*`, time.Minute).SetVal("OK")

	svc := NewCatalogService(newCatalogStore(now), client, time.Minute, testLogger())
	svc.now = func() time.Time { return now }

	items, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "movie-1", items[0].Movie.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMoviesDegradesOnCacheFailure(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	client, mock := redismock.NewClientMock()

	mock.ExpectGet(movieListCacheKey).SetErr(assert.AnError)
	mock.Regexp().ExpectSet(movieListCacheKey, `.*`, time.Minute).SetErr(assert.AnError)

	svc := NewCatalogService(newCatalogStore(now), client, time.Minute, testLogger())
	svc.now = func() time.Time { return now }

	items, err := svc.ListMovies(context.Background())
	require.NoError(t, err, "a broken cache must not break browsing")
	require.Len(t, items, 1)
}

func TestMovieDetailsCacheKeyPerMovie(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	client, mock := redismock.NewClientMock()

	mock.ExpectGet(movieDetailsCachePfx + "movie-1").RedisNil()
	mock.Regexp().ExpectSet(movieDetailsCachePfx+"movie-1", `.*Dune.*`, time.Minute).SetVal("OK")

	svc := NewCatalogService(newCatalogStore(now), client, time.Minute, testLogger())
	svc.now = func() time.Time { return now }

	details, err := svc.MovieDetails(context.Background(), "movie-1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", details.Movie.Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineapp/models"
	"cineapp/status"
	"cineapp/store"
)

type fakeUploader struct {
	name        string
	contentType string
	data        []byte
	url         string
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, name, contentType string, data []byte) (string, error) {
	f.name = name
	f.contentType = contentType
	f.data = data
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type reviewFixture struct {
	store    *store.MemoryStore
	uploader *fakeUploader
	reviews  *ReviewService
	entry    *models.UserHistoryEntry
}

// newReviewFixture seeds a purchase entry whose screening ended an hour
// before the fixed clock.
func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	st := store.NewMemoryStore()
	uploader := &fakeUploader{url: "https://blobs.example.com/review_media/photo_abc.jpg"}

	reviews := NewReviewService(st, uploader, testLogger())
	now := time.Date(2025, 8, 20, 22, 0, 0, 0, time.UTC)
	reviews.now = func() time.Time { return now }

	st.PutMovie(&models.Movie{
		ID:        "movie-1",
		Title:     "Inception",
		PosterURL: "https://img.example.com/inception.jpg",
		Available: true,
	})

	entry := &models.UserHistoryEntry{
		OperationID:       "op-1",
		UserID:            "user-1",
		MovieID:           "movie-1",
		ShowtimeID:        "showtime-1",
		Action:            models.HistoryActionPurchased,
		NumberOfTickets:   2,
		ShowtimeStartTime: now.Add(-3 * time.Hour),
		DurationMinutes:   120,
	}
	require.NoError(t, st.AppendHistory(context.Background(), entry))

	return &reviewFixture{store: st, uploader: uploader, reviews: reviews, entry: entry}
}

func TestSubmitReviewAfterScreening(t *testing.T) {
	f := newReviewFixture(t)

	review, err := f.reviews.SubmitReview(context.Background(), "user-1", f.entry.ID, 5, "Loved it", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, "user-1", review.UserID)
	assert.Equal(t, "movie-1", review.MovieID)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Inception", review.MovieTitle)
	assert.Equal(t, "https://img.example.com/inception.jpg", review.MoviePosterURL)
	assert.Empty(t, review.MediaURL)

	listed, err := f.reviews.ListMovieReviews(context.Background(), "movie-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, review.ID, listed[0].ID)
}

func TestSubmitReviewWithPhoto(t *testing.T) {
	f := newReviewFixture(t)

	media := &MediaUpload{
		Type:        models.MediaTypePhoto,
		ContentType: "image/jpeg",
		Data:        []byte{0xff, 0xd8, 0xff},
	}
	review, err := f.reviews.SubmitReview(context.Background(), "user-1", f.entry.ID, 4, "Great visuals", media)
	require.NoError(t, err)

	assert.Equal(t, f.uploader.url, review.MediaURL)
	assert.Equal(t, models.MediaTypePhoto, review.MediaType)
	assert.Equal(t, "image/jpeg", f.uploader.contentType)
	assert.Regexp(t, `^review_media/photo_[0-9a-f]{16}\.jpg$`, f.uploader.name)
}

func TestSubmitReviewUploadFailureAbortsReview(t *testing.T) {
	f := newReviewFixture(t)
	f.uploader.err = assert.AnError

	media := &MediaUpload{Type: models.MediaTypeVideo, ContentType: "video/mp4", Data: []byte{1}}
	_, err := f.reviews.SubmitReview(context.Background(), "user-1", f.entry.ID, 4, "clip attached", media)
	require.Error(t, err)

	listed, err := f.reviews.ListMovieReviews(context.Background(), "movie-1")
	require.NoError(t, err)
	assert.Empty(t, listed, "a failed upload must not leave a review behind")
}

func TestSubmitReviewRatingBounds(t *testing.T) {
	f := newReviewFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.reviews.SubmitReview(context.Background(), "user-1", f.entry.ID, rating, "out of range", nil)
		assert.ErrorIs(t, err, status.ErrInvalidRating, "rating %d", rating)
	}
}

func TestSubmitReviewBlankComment(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.reviews.SubmitReview(context.Background(), "user-1", f.entry.ID, 4, "   \t", nil)
	assert.ErrorIs(t, err, status.ErrEmptyComment)
}

func TestSubmitReviewRequiresAuthentication(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.reviews.SubmitReview(context.Background(), "", f.entry.ID, 4, "fine", nil)
	assert.ErrorIs(t, err, status.ErrNotAuthenticated)
}

func TestSubmitReviewUnknownEntry(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.reviews.SubmitReview(context.Background(), "user-1", "entry-missing", 4, "fine", nil)
	assert.ErrorIs(t, err, status.ErrHistoryEntryNotFound)
}

func TestSubmitReviewForeignEntry(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.reviews.SubmitReview(context.Background(), "user-2", f.entry.ID, 4, "not my ticket", nil)
	assert.ErrorIs(t, err, status.ErrHistoryEntryForbidden)
}

func TestSubmitReviewRejectsCancelledEntry(t *testing.T) {
	f := newReviewFixture(t)

	cancelled := &models.UserHistoryEntry{
		OperationID:       "op-2",
		UserID:            "user-1",
		MovieID:           "movie-1",
		ShowtimeID:        "showtime-1",
		Action:            models.HistoryActionCancelled,
		ShowtimeStartTime: time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC),
		DurationMinutes:   120,
	}
	require.NoError(t, f.store.AppendHistory(context.Background(), cancelled))

	_, err := f.reviews.SubmitReview(context.Background(), "user-1", cancelled.ID, 4, "refunded", nil)
	assert.ErrorIs(t, err, status.ErrReviewRequiresTicket)
}

func TestSubmitReviewBeforeScreeningEnds(t *testing.T) {
	f := newReviewFixture(t)

	running := &models.UserHistoryEntry{
		OperationID:       "op-3",
		UserID:            "user-1",
		MovieID:           "movie-1",
		ShowtimeID:        "showtime-1",
		Action:            models.HistoryActionPurchased,
		ShowtimeStartTime: time.Date(2025, 8, 20, 21, 30, 0, 0, time.UTC),
		DurationMinutes:   120,
	}
	require.NoError(t, f.store.AppendHistory(context.Background(), running))

	_, err := f.reviews.SubmitReview(context.Background(), "user-1", running.ID, 4, "still watching", nil)
	assert.ErrorIs(t, err, status.ErrScreeningNotFinished)
}

func TestSubmitReviewUnsupportedMediaType(t *testing.T) {
	f := newReviewFixture(t)

	media := &MediaUpload{Type: "document", ContentType: "application/pdf", Data: []byte{1}}
	_, err := f.reviews.SubmitReview(context.Background(), "user-1", f.entry.ID, 4, "attached", media)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported media type")
}

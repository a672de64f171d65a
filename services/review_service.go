package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cineapp/blob"
	"cineapp/models"
	"cineapp/status"
	"cineapp/store"
	"cineapp/utils"
)

// MediaUpload carries an optional review attachment. Type is one of the
// models.MediaType* values and decides the stored file extension.
type MediaUpload struct {
	Type        string
	ContentType string
	Data        []byte
}

var mediaExtensions = map[string]string{
	models.MediaTypePhoto: "jpg",
	models.MediaTypeVideo: "mp4",
	models.MediaTypeAudio: "m4a",
}

// ReviewService accepts post-viewing reviews. A review requires a
// purchase history entry of the calling user whose screening already
// finished; the media attachment goes to the blob store collaborator.
type ReviewService struct {
	store    store.Store
	uploader blob.Uploader
	logger   *slog.Logger
	now      func() time.Time
}

func NewReviewService(st store.Store, uploader blob.Uploader, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:    st,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ReviewService) SubmitReview(ctx context.Context, userID, historyEntryID string, rating int, comment string, media *MediaUpload) (*models.Review, error) {
	if userID == "" {
		return nil, status.ErrNotAuthenticated
	}
	if rating < 1 || rating > 5 {
		return nil, status.ErrInvalidRating
	}
	if strings.TrimSpace(comment) == "" {
		return nil, status.ErrEmptyComment
	}

	entry, err := s.store.GetHistoryEntry(ctx, historyEntryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.ErrHistoryEntryNotFound
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, status.ErrHistoryEntryForbidden
	}
	if entry.Action != models.HistoryActionPurchased {
		return nil, status.ErrReviewRequiresTicket
	}
	if !entry.ScreeningFinished(s.now()) {
		return nil, status.ErrScreeningNotFinished
	}

	movie, err := s.store.GetMovie(ctx, entry.MovieID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.ErrMovieNotFound
		}
		return nil, err
	}

	review := &models.Review{
		UserID:         userID,
		MovieID:        entry.MovieID,
		ShowtimeID:     entry.ShowtimeID,
		Rating:         rating,
		Comment:        comment,
		ReviewDate:     s.now().UTC(),
		MovieTitle:     movie.Title,
		MoviePosterURL: movie.PosterURL,
	}

	if media != nil {
		url, err := s.uploadMedia(ctx, media)
		if err != nil {
			return nil, fmt.Errorf("upload review media: %w", err)
		}
		review.MediaURL = url
		review.MediaType = media.Type
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review submitted",
		"user_id", userID,
		"movie_id", review.MovieID,
		"rating", rating,
		"has_media", media != nil,
	)
	return review, nil
}

// ListMovieReviews returns a movie's reviews, newest first.
func (s *ReviewService) ListMovieReviews(ctx context.Context, movieID string) ([]*models.Review, error) {
	return s.store.ListMovieReviews(ctx, movieID)
}

func (s *ReviewService) uploadMedia(ctx context.Context, media *MediaUpload) (string, error) {
	if s.uploader == nil {
		return "", errors.New("media uploads are not configured")
	}

	ext, ok := mediaExtensions[media.Type]
	if !ok {
		return "", fmt.Errorf("unsupported media type %q", media.Type)
	}

	code, err := utils.GenerateCode(8)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("review_media/%s_%s.%s", media.Type, strings.ToLower(code), ext)

	return s.uploader.Upload(ctx, name, media.ContentType, media.Data)
}

package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cineapp/models"
	"cineapp/services"
)

var mediaContentTypes = map[string]string{
	models.MediaTypePhoto: "image/jpeg",
	models.MediaTypeVideo: "video/mp4",
	models.MediaTypeAudio: "audio/mp4",
}

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// SubmitReview - Rate a finished screening, optionally with media
func (h *ReviewHandler) SubmitReview(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Sign in to submit a review", nil)
	}

	var req struct {
		HistoryEntryID string `json:"history_entry_id"`
		Rating         int    `json:"rating"`
		Comment        string `json:"comment"`
		MediaType      string `json:"media_type"`
		MediaData      string `json:"media_data"` // base64
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	var media *services.MediaUpload
	if req.MediaData != "" {
		contentType, ok := mediaContentTypes[req.MediaType]
		if !ok {
			return apis.NewBadRequestError("Unsupported media type", nil)
		}
		data, err := base64.StdEncoding.DecodeString(req.MediaData)
		if err != nil {
			return apis.NewBadRequestError("Invalid media payload", err)
		}
		media = &services.MediaUpload{
			Type:        req.MediaType,
			ContentType: contentType,
			Data:        data,
		}
	}

	review, err := h.reviews.SubmitReview(e.Request.Context(), e.Auth.Id, req.HistoryEntryID, req.Rating, req.Comment, media)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, review)
}

// ListMovieReviews - A movie's reviews, newest first
func (h *ReviewHandler) ListMovieReviews(e *core.RequestEvent) error {
	movieID := e.Request.PathValue("movieId")
	if movieID == "" {
		return apis.NewBadRequestError("Missing movie id", nil)
	}

	reviews, err := h.reviews.ListMovieReviews(e.Request.Context(), movieID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

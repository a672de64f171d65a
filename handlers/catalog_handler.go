package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"cineapp/services"
)

type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListMovies - Browse available movies with their earliest showtime
func (h *CatalogHandler) ListMovies(e *core.RequestEvent) error {
	items, err := h.catalog.ListMovies(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"movies": items,
		"total":  len(items),
	})
}

// MovieDetails - A movie with its upcoming showtimes and theaters
func (h *CatalogHandler) MovieDetails(e *core.RequestEvent) error {
	movieID := e.Request.PathValue("movieId")
	if movieID == "" {
		return apis.NewBadRequestError("Missing movie id", nil)
	}

	details, err := h.catalog.MovieDetails(e.Request.Context(), movieID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, details)
}

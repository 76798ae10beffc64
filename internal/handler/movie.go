package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/service"
)

type MovieHandler struct {
	movies *service.MovieService
	daily  *service.DailyMovieService
}

func NewMovieHandler(movies *service.MovieService, daily *service.DailyMovieService) *MovieHandler {
	return &MovieHandler{movies: movies, daily: daily}
}

// Details handles GET /api/movies/:tmdbId
func (h *MovieHandler) Details(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_MOVIE_ID", errMsg)
	}

	view, err := h.movies.Details(c.Context(), tmdbID, viewerID(c))
	if err != nil {
		return serviceError(c, err, "Failed to load movie")
	}
	return c.JSON(view)
}

// Trending handles GET /api/movies/trending
func (h *MovieHandler) Trending(c fiber.Ctx) error {
	window := c.Query("window", "week")
	if window != "day" && window != "week" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_WINDOW", "window must be day or week")
	}

	movies, err := h.movies.Trending(c.Context(), window)
	if err != nil {
		return serviceError(c, err, "Failed to load trending movies")
	}
	return c.JSON(movies)
}

// Daily handles GET /api/movies/daily
func (h *MovieHandler) Daily(c fiber.Ctx) error {
	pick, err := h.daily.Today(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to pick a daily movie")
	}
	return c.JSON(pick)
}

// Search handles GET /api/movies/search
func (h *MovieHandler) Search(c fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_QUERY", "query is required")
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))

	movies, err := h.movies.Search(c.Context(), query, page)
	if err != nil {
		return serviceError(c, err, "Failed to search movies")
	}
	return c.JSON(movies)
}

// SetGlobalPoster handles POST /api/movies/:tmdbId/poster
func (h *MovieHandler) SetGlobalPoster(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_MOVIE_ID", errMsg)
	}

	var req struct {
		PosterURL string `json:"posterUrl"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.PosterURL == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "posterUrl is required")
	}

	poster, err := h.movies.SetGlobalPoster(c.Context(), middleware.CurrentUser(c).ID, tmdbID, req.PosterURL)
	if err != nil {
		return serviceError(c, err, "Failed to set poster")
	}
	return c.JSON(poster)
}

// GlobalPoster handles GET /api/movies/:tmdbId/poster
func (h *MovieHandler) GlobalPoster(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_MOVIE_ID", errMsg)
	}

	url, err := h.movies.GlobalPoster(c.Context(), tmdbID)
	if err != nil {
		return serviceError(c, err, "Failed to load poster")
	}
	return c.JSON(fiber.Map{"posterUrl": url})
}

package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/service"
)

// WatchlistHandler covers the per-user movie preference surfaces:
// watchlist, favorites, and personal posters.
type WatchlistHandler struct {
	users *service.UserService
}

func NewWatchlistHandler(users *service.UserService) *WatchlistHandler {
	return &WatchlistHandler{users: users}
}

// Toggle handles POST /api/users/watchlist/:tmdbId
func (h *WatchlistHandler) Toggle(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.users.ToggleWatchlist(c.Context(), middleware.CurrentUser(c).ID, tmdbID)
	if err != nil {
		return serviceError(c, err, "Failed to toggle watchlist")
	}
	return c.JSON(resp)
}

// Add handles PUT /api/users/watchlist/:tmdbId
func (h *WatchlistHandler) Add(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.users.AddToWatchlist(c.Context(), middleware.CurrentUser(c).ID, tmdbID); err != nil {
		return serviceError(c, err, "Failed to add to watchlist")
	}
	return c.JSON(fiber.Map{"message": "Added to watchlist"})
}

// Remove handles DELETE /api/users/watchlist/:tmdbId
func (h *WatchlistHandler) Remove(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.users.RemoveFromWatchlist(c.Context(), middleware.CurrentUser(c).ID, tmdbID); err != nil {
		return serviceError(c, err, "Failed to remove from watchlist")
	}
	return c.JSON(fiber.Map{"message": "Removed from watchlist"})
}

// Status handles GET /api/users/watchlist/:tmdbId
func (h *WatchlistHandler) Status(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	in, err := h.users.InWatchlist(c.Context(), middleware.CurrentUser(c).ID, tmdbID)
	if err != nil {
		return serviceError(c, err, "Failed to check watchlist")
	}
	return c.JSON(fiber.Map{"inWatchlist": in})
}

// Watchlist handles GET /api/users/:id/watchlist
func (h *WatchlistHandler) Watchlist(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	movies, err := h.users.Watchlist(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load watchlist")
	}
	return c.JSON(movies)
}

// Favorites handles GET /api/users/:id/favorites
func (h *WatchlistHandler) Favorites(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	movies, err := h.users.Favorites(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load favorites")
	}
	return c.JSON(movies)
}

// AddFavorite handles POST /api/users/favorites/:tmdbId
func (h *WatchlistHandler) AddFavorite(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.users.AddFavorite(c.Context(), middleware.CurrentUser(c).ID, tmdbID); err != nil {
		return serviceError(c, err, "Failed to add favorite")
	}
	return c.JSON(fiber.Map{"message": "Added to favorites"})
}

// RemoveFavorite handles DELETE /api/users/favorites/:tmdbId
func (h *WatchlistHandler) RemoveFavorite(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.users.RemoveFavorite(c.Context(), middleware.CurrentUser(c).ID, tmdbID); err != nil {
		return serviceError(c, err, "Failed to remove favorite")
	}
	return c.JSON(fiber.Map{"message": "Removed from favorites"})
}

// SetPoster handles POST /api/users/poster/:tmdbId
func (h *WatchlistHandler) SetPoster(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req struct {
		PosterURL string `json:"posterUrl"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.PosterURL == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "posterUrl is required")
	}

	if err := h.users.SetPoster(c.Context(), middleware.CurrentUser(c).ID, tmdbID, req.PosterURL); err != nil {
		return serviceError(c, err, "Failed to set poster")
	}
	return c.JSON(fiber.Map{"posterUrl": req.PosterURL})
}

// Poster handles GET /api/users/poster/:tmdbId
func (h *WatchlistHandler) Poster(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	url, err := h.users.Poster(c.Context(), middleware.CurrentUser(c).ID, tmdbID)
	if err != nil {
		return serviceError(c, err, "Failed to load poster")
	}
	return c.JSON(fiber.Map{"posterUrl": url})
}

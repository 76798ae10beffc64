package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /api/users
func (h *UserHandler) List(c fiber.Ctx) error {
	users, err := h.users.ListAll(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to list users")
	}
	return c.JSON(users)
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	profile, err := h.users.Profile(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load profile")
	}

	resp := fiber.Map{"user": profile}
	if viewer := middleware.CurrentUser(c); viewer != nil {
		following, err := h.users.IsFollowing(c.Context(), viewer.ID, id)
		if err == nil {
			resp["isFollowing"] = following
		}
	}
	return c.JSON(resp)
}

// GetByUsername handles GET /api/users/username/:username
func (h *UserHandler) GetByUsername(c fiber.Ctx) error {
	username, errMsg := middleware.ValidateUsername(c.Params("username"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	profile, err := h.users.GetByUsername(c.Context(), username)
	if err != nil {
		return serviceError(c, err, "Failed to load profile")
	}
	return c.JSON(profile)
}

// ToggleFollow handles POST /api/users/:id/follow
func (h *UserHandler) ToggleFollow(c fiber.Ctx) error {
	targetID, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	resp, err := h.users.ToggleFollow(c.Context(), middleware.Actor(c), targetID)
	if err != nil {
		return serviceError(c, err, "Failed to toggle follow")
	}
	return c.JSON(resp)
}

// Following handles GET /api/users/:id/following
func (h *UserHandler) Following(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}
	users, err := h.users.Following(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load following")
	}
	return c.JSON(users)
}

// Followers handles GET /api/users/:id/followers
func (h *UserHandler) Followers(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}
	users, err := h.users.Followers(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load followers")
	}
	return c.JSON(users)
}

// SetTopMovies handles POST /api/users/top-movies
func (h *UserHandler) SetTopMovies(c fiber.Ctx) error {
	var req struct {
		Movies []string `json:"movies"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	userID := middleware.CurrentUser(c).ID
	if err := h.users.SetTopMovies(c.Context(), userID, req.Movies); err != nil {
		return serviceError(c, err, "Failed to set top movies")
	}
	return c.JSON(fiber.Map{"topMovies": req.Movies})
}

// Backdrop handles GET /api/users/backdrop
func (h *UserHandler) Backdrop(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"backdrop": middleware.CurrentUser(c).ProfileBackdrop})
}

// SetBackdrop handles PUT /api/users/backdrop
func (h *UserHandler) SetBackdrop(c fiber.Ctx) error {
	var req struct {
		Backdrop string `json:"backdrop"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.Backdrop == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "backdrop is required")
	}

	if err := h.users.SetBackdrop(c.Context(), middleware.CurrentUser(c).ID, req.Backdrop); err != nil {
		return serviceError(c, err, "Failed to set backdrop")
	}
	return c.JSON(fiber.Map{"backdrop": req.Backdrop})
}

// SetAvatar handles PUT /api/users/avatar
func (h *UserHandler) SetAvatar(c fiber.Ctx) error {
	var req struct {
		Avatar string `json:"avatar"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.Avatar == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "avatar is required")
	}

	if err := h.users.SetAvatar(c.Context(), middleware.CurrentUser(c).ID, req.Avatar); err != nil {
		return serviceError(c, err, "Failed to set avatar")
	}
	return c.JSON(fiber.Map{"avatar": req.Avatar})
}

// RecentGifs handles GET /api/users/gifs/recent
func (h *UserHandler) RecentGifs(c fiber.Ctx) error {
	gifs, err := h.users.RecentGifs(c.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return serviceError(c, err, "Failed to load recent gifs")
	}
	return c.JSON(fiber.Map{"gifs": gifs})
}

// Suggest handles POST /api/users/:id/suggest
func (h *UserHandler) Suggest(c fiber.Ctx) error {
	targetID, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	var req model.MovieSummary
	if err := c.Bind().JSON(&req); err != nil || req.TmdbID <= 0 || req.Title == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "movie id and title are required")
	}

	if err := h.users.SuggestMovie(c.Context(), middleware.Actor(c), targetID, req); err != nil {
		return serviceError(c, err, "Failed to send suggestion")
	}
	return c.JSON(fiber.Map{"message": "Suggestion sent"})
}

// Share handles POST /api/users/:id/share
func (h *UserHandler) Share(c fiber.Ctx) error {
	targetID, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	var req struct {
		RelatedID   string `json:"relatedId"`
		MovieTitle  string `json:"movieTitle"`
		MoviePoster string `json:"moviePoster"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.RelatedID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "relatedId is required")
	}

	err := h.users.ShareContent(c.Context(), middleware.Actor(c), targetID, req.RelatedID, req.MovieTitle, req.MoviePoster)
	if err != nil {
		return serviceError(c, err, "Failed to share")
	}
	return c.JSON(fiber.Map{"message": "Shared"})
}

package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/service"
)

type ListHandler struct {
	lists *service.ListService
}

func NewListHandler(lists *service.ListService) *ListHandler {
	return &ListHandler{lists: lists}
}

func viewerID(c fiber.Ctx) *uuid.UUID {
	if user := middleware.CurrentUser(c); user != nil {
		return &user.ID
	}
	return nil
}

// Create handles POST /api/lists
func (h *ListHandler) Create(c fiber.Ctx) error {
	var req model.CreateListRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	list, err := h.lists.Create(c.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return serviceError(c, err, "Failed to create list")
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// Get handles GET /api/lists/:id
func (h *ListHandler) Get(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	list, err := h.lists.Get(c.Context(), id, viewerID(c))
	if err != nil {
		return serviceError(c, err, "Failed to load list")
	}
	return c.JSON(list)
}

// ByUser handles GET /api/lists/user/:id
func (h *ListHandler) ByUser(c fiber.Ctx) error {
	ownerID, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	lists, err := h.lists.ByUser(c.Context(), ownerID, viewerID(c))
	if err != nil {
		return serviceError(c, err, "Failed to load lists")
	}
	return c.JSON(lists)
}

// Mine handles GET /api/lists/my. Private lists are included since
// the viewer is the owner.
func (h *ListHandler) Mine(c fiber.Ctx) error {
	id := middleware.CurrentUser(c).ID
	lists, err := h.lists.ByUser(c.Context(), id, &id)
	if err != nil {
		return serviceError(c, err, "Failed to load lists")
	}
	return c.JSON(lists)
}

// Popular handles GET /api/lists/popular
func (h *ListHandler) Popular(c fiber.Ctx) error {
	lists, err := h.lists.Popular(c.Context(), 20)
	if err != nil {
		return serviceError(c, err, "Failed to load popular lists")
	}
	return c.JSON(lists)
}

// Friends handles GET /api/lists/friends
func (h *ListHandler) Friends(c fiber.Ctx) error {
	lists, err := h.lists.FriendsLists(c.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return serviceError(c, err, "Failed to load friends' lists")
	}
	return c.JSON(lists)
}

// Saved handles GET /api/lists/saved
func (h *ListHandler) Saved(c fiber.Ctx) error {
	lists, err := h.lists.Saved(c.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return serviceError(c, err, "Failed to load saved lists")
	}
	return c.JSON(lists)
}

// Update handles PATCH /api/lists/:id
func (h *ListHandler) Update(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	var req model.UpdateListRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	list, err := h.lists.Update(c.Context(), middleware.CurrentUser(c).ID, id, req)
	if err != nil {
		return serviceError(c, err, "Failed to update list")
	}
	return c.JSON(list)
}

// Delete handles DELETE /api/lists/:id
func (h *ListHandler) Delete(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	if err := h.lists.Delete(c.Context(), middleware.CurrentUser(c).ID, id); err != nil {
		return serviceError(c, err, "Failed to delete list")
	}
	return c.JSON(fiber.Map{"message": "List deleted"})
}

// AddMovie handles POST /api/lists/:id/movies
func (h *ListHandler) AddMovie(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	var req model.ListEntry
	if err := c.Bind().JSON(&req); err != nil || req.TmdbID <= 0 || req.Title == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "movie id and title are required")
	}

	if err := h.lists.AddMovie(c.Context(), middleware.CurrentUser(c).ID, id, req); err != nil {
		return serviceError(c, err, "Failed to add movie")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Movie added"})
}

// ToggleLike handles POST /api/lists/:id/like
func (h *ListHandler) ToggleLike(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	resp, err := h.lists.ToggleLike(c.Context(), middleware.Actor(c), id)
	if err != nil {
		return serviceError(c, err, "Failed to toggle like")
	}
	return c.JSON(resp)
}

// ToggleSave handles POST /api/lists/:id/save
func (h *ListHandler) ToggleSave(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	resp, err := h.lists.ToggleSave(c.Context(), middleware.CurrentUser(c).ID, id)
	if err != nil {
		return serviceError(c, err, "Failed to toggle save")
	}
	return c.JSON(resp)
}

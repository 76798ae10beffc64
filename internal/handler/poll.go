package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/service"
)

type PollHandler struct {
	polls *service.PollService
}

func NewPollHandler(polls *service.PollService) *PollHandler {
	return &PollHandler{polls: polls}
}

// Create handles POST /api/polls
func (h *PollHandler) Create(c fiber.Ctx) error {
	var req model.CreatePollRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	poll, err := h.polls.Create(c.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return serviceError(c, err, "Failed to create poll")
	}
	return c.Status(fiber.StatusCreated).JSON(poll)
}

// Get handles GET /api/polls/:id
func (h *PollHandler) Get(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	poll, err := h.polls.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load poll")
	}
	return c.JSON(poll)
}

// List handles GET /api/polls
func (h *PollHandler) List(c fiber.Ctx) error {
	polls, err := h.polls.List(c.Context(), 50)
	if err != nil {
		return serviceError(c, err, "Failed to load polls")
	}
	return c.JSON(polls)
}

// Vote handles POST /api/polls/:id/vote
func (h *PollHandler) Vote(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	var req model.PollVoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	poll, err := h.polls.Vote(c.Context(), middleware.CurrentUser(c).ID, id, req.OptionIndex)
	if err != nil {
		return serviceError(c, err, "Failed to record vote")
	}
	return c.JSON(poll)
}

// Reply handles POST /api/polls/:id/replies
func (h *PollHandler) Reply(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	reply, err := h.polls.Reply(c.Context(), middleware.CurrentUser(c).ID, id, req.Text)
	if err != nil {
		return serviceError(c, err, "Failed to post reply")
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

// Delete handles DELETE /api/polls/:id
func (h *PollHandler) Delete(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	if err := h.polls.Delete(c.Context(), middleware.CurrentUser(c).ID, id); err != nil {
		return serviceError(c, err, "Failed to delete poll")
	}
	return c.JSON(fiber.Map{"message": "Poll deleted"})
}

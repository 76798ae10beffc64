package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/service"
)

type LogHandler struct {
	logs *service.LogService
}

func NewLogHandler(logs *service.LogService) *LogHandler {
	return &LogHandler{logs: logs}
}

// Create handles POST /api/logs
func (h *LogHandler) Create(c fiber.Ctx) error {
	var req model.CreateLogRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if req.TmdbID <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "movieId is required")
	}
	if errMsg := middleware.ValidateRating(req.Rating); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entry, err := h.logs.Create(c.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return serviceError(c, err, "Failed to create log")
	}
	Metrics.LogsCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Get handles GET /api/logs/:id
func (h *LogHandler) Get(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	entry, err := h.logs.Get(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load log")
	}
	return c.JSON(entry)
}

// ByUser handles GET /api/logs/user/:id
func (h *LogHandler) ByUser(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	logs, err := h.logs.ByUser(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load logs")
	}
	return c.JSON(logs)
}

// Feed handles GET /api/logs/feed. An optional ?window=day|week|month
// restricts the feed to that period.
func (h *LogHandler) Feed(c fiber.Ctx) error {
	viewerID := middleware.CurrentUser(c).ID

	var since time.Time
	switch c.Query("window") {
	case "":
		logs, err := h.logs.FriendsFeed(c.Context(), viewerID, 50)
		if err != nil {
			return serviceError(c, err, "Failed to load feed")
		}
		return c.JSON(logs)
	case "day":
		since = time.Now().Add(-24 * time.Hour)
	case "week":
		since = time.Now().Add(-7 * 24 * time.Hour)
	case "month":
		since = time.Now().Add(-30 * 24 * time.Hour)
	default:
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "window must be day, week, or month")
	}

	logs, err := h.logs.FriendsFeedSince(c.Context(), viewerID, since)
	if err != nil {
		return serviceError(c, err, "Failed to load feed")
	}
	return c.JSON(logs)
}

// ByMovie handles GET /api/logs/movie/:tmdbId. Returns popular reviews
// for a title, or the viewer's circle with ?friends=true.
func (h *LogHandler) ByMovie(c fiber.Ctx) error {
	tmdbID, errMsg := middleware.ValidateTmdbID(c.Params("tmdbId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if c.Query("friends") == "true" {
		viewer := middleware.CurrentUser(c)
		if viewer == nil {
			return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "NO_TOKEN", "Not authorized, no token")
		}
		logs, err := h.logs.ByMovieFromFriends(c.Context(), viewer.ID, tmdbID)
		if err != nil {
			return serviceError(c, err, "Failed to load reviews")
		}
		return c.JSON(logs)
	}

	logs, err := h.logs.ByMoviePopular(c.Context(), tmdbID, 50)
	if err != nil {
		return serviceError(c, err, "Failed to load reviews")
	}
	return c.JSON(logs)
}

// Update handles PATCH /api/logs/:id
func (h *LogHandler) Update(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	var req model.UpdateLogRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if req.Rating != nil {
		if errMsg := middleware.ValidateRating(*req.Rating); errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
	}

	entry, err := h.logs.Update(c.Context(), middleware.CurrentUser(c).ID, id, req)
	if err != nil {
		return serviceError(c, err, "Failed to update log")
	}
	return c.JSON(entry)
}

// Delete handles DELETE /api/logs/:id
func (h *LogHandler) Delete(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	if err := h.logs.Delete(c.Context(), middleware.CurrentUser(c).ID, id); err != nil {
		return serviceError(c, err, "Failed to delete log")
	}
	return c.JSON(fiber.Map{"message": "Log deleted"})
}

// ToggleLike handles POST /api/logs/:id/like
func (h *LogHandler) ToggleLike(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	resp, err := h.logs.ToggleLike(c.Context(), middleware.Actor(c), id)
	if err != nil {
		return serviceError(c, err, "Failed to toggle like")
	}
	return c.JSON(resp)
}

// AddReply handles POST /api/logs/:id/reply
func (h *LogHandler) AddReply(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	var req model.ReplyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	reply, err := h.logs.AddReply(c.Context(), middleware.Actor(c), id, req)
	if err != nil {
		return serviceError(c, err, "Failed to post reply")
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

// Replies handles GET /api/logs/:id/replies
func (h *LogHandler) Replies(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	replies, err := h.logs.Replies(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "Failed to load replies")
	}
	return c.JSON(replies)
}

// DeleteReply handles DELETE /api/logs/reply/:replyId
func (h *LogHandler) DeleteReply(c fiber.Ctx) error {
	replyID, errResp := pathUUID(c, "replyId")
	if errResp != nil {
		return errResp
	}

	if err := h.logs.DeleteReply(c.Context(), middleware.CurrentUser(c).ID, replyID); err != nil {
		return serviceError(c, err, "Failed to delete reply")
	}
	return c.JSON(fiber.Map{"message": "Reply deleted"})
}

// ToggleReplyLike handles POST /api/logs/reply/:replyId/like
func (h *LogHandler) ToggleReplyLike(c fiber.Ctx) error {
	replyID, errResp := pathUUID(c, "replyId")
	if errResp != nil {
		return errResp
	}

	resp, err := h.logs.ToggleReplyLike(c.Context(), middleware.CurrentUser(c).ID, replyID)
	if err != nil {
		return serviceError(c, err, "Failed to toggle reply like")
	}
	return c.JSON(resp)
}

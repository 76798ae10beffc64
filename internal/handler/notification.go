package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	items, err := h.notifications.List(c.Context(), middleware.CurrentUser(c).ID, limit)
	if err != nil {
		return serviceError(c, err, "Failed to load notifications")
	}
	return c.JSON(items)
}

// MarkAllRead handles PATCH /api/notifications/read (POST accepted too)
func (h *NotificationHandler) MarkAllRead(c fiber.Ctx) error {
	if err := h.notifications.MarkAllRead(c.Context(), middleware.CurrentUser(c).ID); err != nil {
		return serviceError(c, err, "Failed to mark notifications read")
	}
	return c.JSON(fiber.Map{"message": "All notifications marked read"})
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c fiber.Ctx) error {
	count, err := h.notifications.UnreadCount(c.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return serviceError(c, err, "Failed to count notifications")
	}
	return c.JSON(fiber.Map{"count": count})
}

// SendTest handles POST /api/notifications/test. It delivers a
// notification to the caller's own inbox and websocket.
func (h *NotificationHandler) SendTest(c fiber.Ctx) error {
	n, err := h.notifications.SendTest(c.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return serviceError(c, err, "Failed to send test notification")
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

// Delete handles DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c fiber.Ctx) error {
	id, errResp := pathUUID(c, "id")
	if errResp != nil {
		return errResp
	}

	if err := h.notifications.Delete(c.Context(), middleware.CurrentUser(c).ID, id); err != nil {
		return serviceError(c, err, "Failed to delete notification")
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}

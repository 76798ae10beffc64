package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/service"
)

type StatsHandler struct {
	users *service.UserService
}

func NewStatsHandler(users *service.UserService) *StatsHandler {
	return &StatsHandler{users: users}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.users.Stats(c.Context())
	if err != nil {
		return serviceError(c, err, "Failed to fetch statistics")
	}
	return c.JSON(stats)
}

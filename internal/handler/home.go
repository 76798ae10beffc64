package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/service"
)

type HomeHandler struct {
	home *service.HomeService
}

func NewHomeHandler(home *service.HomeService) *HomeHandler {
	return &HomeHandler{home: home}
}

// Get handles GET /api/home
func (h *HomeHandler) Get(c fiber.Ctx) error {
	view, err := h.home.Build(c.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return serviceError(c, err, "Failed to build home feed")
	}
	return c.JSON(view)
}

package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/service"
)

type SearchHandler struct {
	search *service.SearchService
}

func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// All handles GET /api/search
func (h *SearchHandler) All(c fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_QUERY", "query is required")
	}

	results, err := h.search.All(c.Context(), query)
	if err != nil {
		return serviceError(c, err, "Search failed")
	}
	return c.JSON(results)
}

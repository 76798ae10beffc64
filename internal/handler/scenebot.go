package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/service"
)

type SceneBotHandler struct {
	bot *service.SceneBotService
}

func NewSceneBotHandler(bot *service.SceneBotService) *SceneBotHandler {
	return &SceneBotHandler{bot: bot}
}

// Chat handles POST /api/scenebot/chat
func (h *SceneBotHandler) Chat(c fiber.Ctx) error {
	var req struct {
		Message  string `json:"message"`
		Language string `json:"language"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	reply, err := h.bot.Chat(c.Context(), middleware.CurrentUser(c).ID, req.Message, req.Language)
	if err != nil {
		return serviceError(c, err, "SceneBot is unavailable")
	}
	Metrics.SceneBotMessages.Inc()
	return c.JSON(fiber.Map{"reply": reply})
}

// Translate handles POST /api/scenebot/translate
func (h *SceneBotHandler) Translate(c fiber.Ctx) error {
	var req struct {
		Text   string `json:"text"`
		Target string `json:"target"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.Text == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "text is required")
	}
	if req.Target == "" {
		req.Target = "english"
	}

	translated, err := h.bot.Translate(c.Context(), req.Text, req.Target)
	if err != nil {
		return serviceError(c, err, "Translation failed")
	}
	return c.JSON(fiber.Map{"translated": translated})
}

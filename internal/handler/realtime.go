package handler

import (
	"log"
	"strings"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/realtime"
	"github.com/PrintSaud/scene-backend/internal/service"
)

var upgrader = websocket.FastHTTPUpgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true
	},
}

type RealtimeHandler struct {
	hub    *realtime.Hub
	tokens *service.TokenService
}

func NewRealtimeHandler(hub *realtime.Hub, tokens *service.TokenService) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, tokens: tokens}
}

// Connect handles GET /ws. Browsers cannot set headers on websocket
// requests, so the token is read from the query string first and the
// Authorization header second.
func (h *RealtimeHandler) Connect(c fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if token == "" {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "NO_TOKEN", "Not authorized, no token")
	}

	userID, err := h.tokens.Verify(token)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired")
	}

	if err := upgrader.Upgrade(c.RequestCtx(), func(conn *websocket.Conn) {
		realtime.Serve(h.hub, conn, userID)
	}); err != nil {
		log.Printf("realtime: upgrade failed for %s: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "UPGRADE_FAILED", "Websocket upgrade failed")
	}
	return nil
}

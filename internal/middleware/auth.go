package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/PrintSaud/scene-backend/internal/model"
	"github.com/PrintSaud/scene-backend/internal/repository"
	"github.com/PrintSaud/scene-backend/internal/service"
)

const userLocalsKey = "currentUser"

// Protect requires a valid Bearer token and loads the account it was
// issued for into the request locals.
func Protect(tokens *service.TokenService, users *repository.UserRepo) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "NO_TOKEN", "Not authorized, no token")
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired")
		}

		user, err := users.FindByID(c.Context(), userID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return ErrorResponse(c, fiber.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
			}
			return ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// ProtectOptional loads the user when a valid token is present and
// lets the request through anonymously otherwise.
func ProtectOptional(tokens *service.TokenService, users *repository.UserRepo) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			return c.Next()
		}
		user, err := users.FindByID(c.Context(), userID)
		if err != nil {
			return c.Next()
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated account, or nil for anonymous
// requests.
func CurrentUser(c fiber.Ctx) *model.User {
	user, _ := c.Locals(userLocalsKey).(*model.User)
	return user
}

// Actor returns the authenticated user in public card form, for
// fan-out calls.
func Actor(c fiber.Ctx) model.PublicUser {
	user := CurrentUser(c)
	if user == nil {
		return model.PublicUser{}
	}
	return model.PublicUser{ID: user.ID, Username: user.Username, Avatar: user.Avatar}
}

func bearerToken(c fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

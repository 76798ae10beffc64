package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/service"
)

// serviceError maps the service layer's sentinel errors onto the API
// error envelope. Unexpected errors become an opaque 500.
func serviceError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, service.ErrUnauthorized):
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, service.ErrForbidden):
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "You cannot do that")
	case errors.Is(err, service.ErrInvalidInput):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrConflict):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, service.ErrExpired):
		return middleware.ErrorResponse(c, fiber.StatusGone, "EXPIRED", err.Error())
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

// pathUUID reads a UUID route parameter. On a malformed value it
// writes the error response and returns it as the second value.
func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_INPUT", name+" must be a valid id")
	}
	return id, nil
}

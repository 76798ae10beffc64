package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/service"
)

// maxUploadSize caps accepted image files at 10 MB.
const maxUploadSize = 10 << 20

type UploadHandler struct {
	images *service.ImageHost
}

func NewUploadHandler(images *service.ImageHost) *UploadHandler {
	return &UploadHandler{images: images}
}

// Upload handles POST /api/upload
func (h *UploadHandler) Upload(c fiber.Ctx) error {
	if !h.images.Enabled() {
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "UPLOADS_DISABLED", "Image uploads are not configured")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FILE", "file is required")
	}
	if header.Size > maxUploadSize {
		return middleware.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the 10MB limit")
	}

	folder := c.FormValue("folder")
	if folder == "" {
		folder = "scene"
	}

	file, err := header.Open()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
	}
	defer file.Close()

	url, err := h.images.Upload(c.Context(), file, header.Filename, folder)
	if err != nil {
		return serviceError(c, err, "Upload failed")
	}
	return c.JSON(fiber.Map{"url": url})
}

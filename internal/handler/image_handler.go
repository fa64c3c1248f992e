package handler

import (
	"github.com/gofiber/fiber/v2"

	"wanderlog/internal/middleware"
	"wanderlog/internal/service"
)

// ImageHandler exposes the standalone image endpoints the web client uses
// for its two-step flows. Unlike the cleanup deletes inside the story
// lifecycle, a delete requested here is the primary operation and its
// failure is surfaced to the caller.
type ImageHandler struct {
	imageService service.ImageService
}

func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return middleware.BadRequest("No image uploaded")
	}

	if file.Size > maxImageSize {
		return middleware.BadRequest("Image size must be less than 10MB")
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read image")
	}
	defer reader.Close()

	uploaded, err := h.imageService.Upload(c.Context(), reader, file.Size, imageContentType(file))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(uploaded)
}

func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	objectKey := c.Query("object_key")
	if objectKey == "" {
		return middleware.BadRequest("object_key is required")
	}

	if err := h.imageService.Delete(c.Context(), objectKey); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Image deleted successfully",
	})
}

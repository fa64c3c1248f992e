package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wanderlog/internal/domain"
	"wanderlog/internal/middleware"
	"wanderlog/internal/service"
)

const maxImageSize = 10 * 1024 * 1024

type StoryHandler struct {
	storyService service.StoryService
	queryService service.StoryQueryService
}

func NewStoryHandler(storyService service.StoryService, queryService service.StoryQueryService) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
		queryService: queryService,
	}
}

func (h *StoryHandler) Create(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateStoryInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	input.VisitedLocations = normalizeLocations(input.VisitedLocations)

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	if closeImage != nil {
		defer closeImage()
	}

	story, err := h.storyService.Create(c.Context(), ownerID, input, image)
	if err != nil {
		return storyError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"story":   story,
		"message": "Travel story added successfully",
	})
}

func (h *StoryHandler) Update(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	storyID, err := uuid.Parse(c.Params("storyId"))
	if err != nil {
		return middleware.BadRequest("Invalid story ID")
	}

	var input domain.UpdateStoryInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	input.VisitedLocations = normalizeLocations(input.VisitedLocations)

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	if closeImage != nil {
		defer closeImage()
	}

	story, err := h.storyService.Update(c.Context(), ownerID, storyID, input, image)
	if err != nil {
		return storyError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"story":   story,
		"message": "Travel story updated successfully",
	})
}

func (h *StoryHandler) SetPinned(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	storyID, err := uuid.Parse(c.Params("storyId"))
	if err != nil {
		return middleware.BadRequest("Invalid story ID")
	}

	var input struct {
		IsFavourite bool `json:"is_favourite"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	story, err := h.storyService.SetFavourite(c.Context(), ownerID, storyID, input.IsFavourite)
	if err != nil {
		return storyError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"story":   story,
		"message": "Updated successfully",
	})
}

func (h *StoryHandler) Delete(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	storyID, err := uuid.Parse(c.Params("storyId"))
	if err != nil {
		return middleware.BadRequest("Invalid story ID")
	}

	if err := h.storyService.Delete(c.Context(), ownerID, storyID); err != nil {
		return storyError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Travel story deleted successfully",
	})
}

func (h *StoryHandler) ClearImage(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	storyID, err := uuid.Parse(c.Params("storyId"))
	if err != nil {
		return middleware.BadRequest("Invalid story ID")
	}

	story, err := h.storyService.ClearImage(c.Context(), ownerID, storyID)
	if err != nil {
		return storyError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"story":   story,
		"message": "Image removed successfully",
	})
}

func (h *StoryHandler) List(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	stories, err := h.queryService.ListAll(c.Context(), ownerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"stories": stories,
	})
}

func (h *StoryHandler) Search(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	stories, err := h.queryService.Search(c.Context(), ownerID, c.Query("query"))
	if err != nil {
		return storyError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"stories": stories,
	})
}

func (h *StoryHandler) FilterByDateRange(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	start, err := strconv.ParseInt(c.Query("start_date"), 10, 64)
	if err != nil {
		return middleware.BadRequest("start_date must be a millisecond timestamp")
	}
	end, err := strconv.ParseInt(c.Query("end_date"), 10, 64)
	if err != nil {
		return middleware.BadRequest("end_date must be a millisecond timestamp")
	}

	stories, err := h.queryService.FilterByDateRange(c.Context(), ownerID, start, end)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"stories": stories,
	})
}

// formImage extracts the optional image part from a multipart request.
// A request without an image part is not an error here; required-image
// rules belong to the service.
func formImage(c *fiber.Ctx) (*service.ImageUpload, func(), error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil, nil
	}

	if file.Size > maxImageSize {
		return nil, nil, middleware.BadRequest("Image size must be less than 10MB")
	}

	reader, err := file.Open()
	if err != nil {
		return nil, nil, middleware.BadRequest("Failed to read image")
	}

	return &service.ImageUpload{
		Reader:      reader,
		Size:        file.Size,
		ContentType: imageContentType(file),
	}, func() { reader.Close() }, nil
}

func imageContentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// normalizeLocations unwraps clients that send the location list as a single
// JSON-encoded form value instead of repeated fields.
func normalizeLocations(locations []string) []string {
	if len(locations) == 1 && strings.HasPrefix(strings.TrimSpace(locations[0]), "[") {
		var decoded []string
		if json.Unmarshal([]byte(locations[0]), &decoded) == nil {
			return decoded
		}
	}
	return locations
}

func storyError(err error) error {
	switch {
	case errors.Is(err, service.ErrMissingStoryFields),
		errors.Is(err, service.ErrInvalidVisitedDate),
		errors.Is(err, service.ErrSearchQueryRequired):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, domain.ErrStoryNotFound):
		return middleware.NotFound("Travel story not found")
	}
	return err
}

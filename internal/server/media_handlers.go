package server

import (
	"io"

	"snapgram/internal/models"
	"snapgram/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// MediaUploadResponse is the API response after uploading a media object.
type MediaUploadResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// UploadMedia handles POST /api/media
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	id, err := s.mediaStore.Put(c.UserContext(), file.Filename, content)
	if err != nil {
		observability.MediaObjects.WithLabelValues("put", "error").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	observability.MediaObjects.WithLabelValues("put", "ok").Inc()

	return c.Status(fiber.StatusCreated).JSON(MediaUploadResponse{
		ID:  id,
		URL: "/api/media/" + id,
	})
}

// ServeMedia handles GET /api/media/:id
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	id := c.Params("id")

	content, err := s.mediaStore.Get(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Media object", id))
	}

	return c.Send(content)
}

package server

import (
	"snapgram/internal/models"
	"snapgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users?cursor=&limit=
func (s *Server) GetUsers(c *fiber.Ctx) error {
	q := parseCursorQuery(c)

	page, err := s.userService.ListUsers(c.Context(), q.Cursor, q.Limit)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(page)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUser(c.Context(), userID)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(user)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(user)
}

// UpdateUser handles PUT /api/users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name     *string `json:"name"`
		Bio      *string `json:"bio"`
		ImageURL *string `json:"image_url"`
		ImageID  *string `json:"image_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(c.Context(), service.UpdateUserInput{
		ActorID:  actorID,
		UserID:   userID,
		Name:     req.Name,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
		ImageID:  req.ImageID,
	})
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.Context(), actorID, userID); err != nil {
		return respondWithDomainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

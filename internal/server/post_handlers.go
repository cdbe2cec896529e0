package server

import (
	"snapgram/internal/models"
	"snapgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts?cursor=&limit=
func (s *Server) GetPosts(c *fiber.Ctx) error {
	q := parseCursorQuery(c)

	page, err := s.postService.ListPosts(c.Context(), q.Cursor, q.Limit)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(page)
}

// SearchPosts handles GET /api/posts/search?q=&cursor=&limit=
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	q := parseCursorQuery(c)

	page, err := s.postService.SearchPosts(c.Context(), c.Query("q"), q.Cursor, q.Limit)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(page)
}

// GetTopLikedPosts handles GET /api/posts/top-liked
func (s *Server) GetTopLikedPosts(c *fiber.Ctx) error {
	posts, err := s.postService.TopLiked(c.Context())
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{"items": posts})
}

// GetSavedPosts handles GET /api/users/me/saved?cursor=&limit=
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	q := parseCursorQuery(c)

	page, err := s.postService.ListSaved(c.Context(), userID, q.Cursor, q.Limit)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Caption  string `json:"caption"`
		ImageURL string `json:"image_url"`
		ImageID  string `json:"image_id"`
		Location string `json:"location"`
		Tags     string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		CreatorID: userID,
		Caption:   req.Caption,
		ImageURL:  req.ImageURL,
		ImageID:   req.ImageID,
		Location:  req.Location,
		Tags:      req.Tags,
	})
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Caption  *string `json:"caption"`
		Location *string `json:"location"`
		Tags     *string `json:"tags"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:  userID,
		PostID:   postID,
		Caption:  req.Caption,
		Location: req.Location,
		Tags:     req.Tags,
	})
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), userID, postID); err != nil {
		return respondWithDomainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.LikePost(c.Context(), userID, postID)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(post)
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.UnlikePost(c.Context(), userID, postID)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(post)
}

// SavePost handles POST /api/posts/:id/save
func (s *Server) SavePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.SavePost(c.Context(), userID, postID)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(post)
}

// UnsavePost handles DELETE /api/posts/:id/save
func (s *Server) UnsavePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.UnsavePost(c.Context(), userID, postID)
	if err != nil {
		return respondWithDomainError(c, err)
	}

	return c.JSON(post)
}

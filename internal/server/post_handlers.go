package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts/. Title and description are pointers: only
// their presence is validated, so explicit empty strings create a post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Please provide both title and description"))
	}

	created, err := s.postService.CreatePost(c.UserContext(), actorID(c), req.Title, req.Description)
	if err != nil {
		return respondServiceError(c, err, map[string]int{
			models.CodeNotFound:   fiber.StatusNotFound,
			models.CodeValidation: fiber.StatusBadRequest,
		})
	}
	return c.JSON(created)
}

// GetPost handles GET /posts/:id. No authentication.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := idParam(c)
	if err != nil {
		return nil
	}

	detail, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err, map[string]int{
			models.CodeNotFound: fiber.StatusNotFound,
		})
	}
	return c.JSON(detail)
}

// DeletePost handles DELETE /posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := idParam(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), actorID(c), postID); err != nil {
		return respondServiceError(c, err, map[string]int{
			models.CodeNotFound:  fiber.StatusNotFound,
			models.CodeForbidden: fiber.StatusForbidden,
		})
	}
	return c.JSON(fiber.Map{"success": "Post deleted successfully"})
}

// AllPosts handles GET /all_posts/. Success responds 201; existing clients
// expect that status.
func (s *Server) AllPosts(c *fiber.Ctx) error {
	feed, err := s.feedService.ListOwnPosts(c.UserContext(), actorID(c))
	if err != nil {
		return respondServiceError(c, err, nil)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"posts": feed})
}

package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /like/:id. A missing post or user is NOT mapped to a
// 404; the lookup failure propagates as a 500.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := idParam(c)
	if err != nil {
		return nil
	}

	result, err := s.engageService.Like(c.UserContext(), actorID(c), postID)
	if err != nil {
		return respondServiceError(c, err, map[string]int{
			models.CodeAlreadyLiked: fiber.StatusBadRequest,
		})
	}
	return c.JSON(result)
}

// UnlikePost handles POST /unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := idParam(c)
	if err != nil {
		return nil
	}

	if err := s.engageService.Unlike(c.UserContext(), actorID(c), postID); err != nil {
		return respondServiceError(c, err, map[string]int{
			models.CodeNotLiked: fiber.StatusBadRequest,
		})
	}
	return c.JSON(fiber.Map{"success": "Post unliked successfully"})
}

// AddComment handles POST /comment/:id. The content arrives as the form
// field "comment", not as JSON.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := idParam(c)
	if err != nil {
		return nil
	}

	content := c.FormValue("comment")

	commentID, err := s.engageService.AddComment(c.UserContext(), actorID(c), postID, content)
	if err != nil {
		return respondServiceError(c, err, map[string]int{
			models.CodeEmptyComment: fiber.StatusBadRequest,
		})
	}
	return c.JSON(fiber.Map{"comment_id": commentID})
}

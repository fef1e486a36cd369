package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /user/. A token whose subject no longer exists is an
// internal fault here, not a 404.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.socialService.Profile(c.UserContext(), actorID(c))
	if err != nil {
		return respondServiceError(c, err, nil)
	}
	return c.JSON(profile)
}

// FollowUser handles POST /follow/:id
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := idParam(c)
	if err != nil {
		return nil
	}

	msg, err := s.socialService.Follow(c.UserContext(), actorID(c), targetID)
	if err != nil {
		return respondServiceError(c, err, map[string]int{
			models.CodeNotFound:         fiber.StatusNotFound,
			models.CodeAlreadyFollowing: fiber.StatusBadRequest,
		})
	}
	return c.JSON(fiber.Map{"success": msg})
}

// UnfollowUser handles POST /unfollow/:id. Unlike Follow, a missing user is
// NOT mapped to a 404 here; the lookup failure propagates as a 500.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := idParam(c)
	if err != nil {
		return nil
	}

	msg, err := s.socialService.Unfollow(c.UserContext(), actorID(c), targetID)
	if err != nil {
		return respondServiceError(c, err, map[string]int{
			models.CodeNotFollowing: fiber.StatusBadRequest,
		})
	}
	return c.JSON(fiber.Map{"success": msg})
}

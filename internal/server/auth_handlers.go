package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Login handles POST /authenticate/. Both fields must be present; empty
// strings are present and go to the verifier.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Username == nil || req.Password == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Please provide both username and password"))
	}

	signed, err := s.authService.Login(c.UserContext(), *req.Username, *req.Password)
	if err != nil {
		return respondServiceError(c, err, map[string]int{
			models.CodeInvalidCredentials: fiber.StatusUnauthorized,
		})
	}

	return c.JSON(fiber.Map{"token": signed})
}

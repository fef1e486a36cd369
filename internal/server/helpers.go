package server

import (
	"errors"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// actorID returns the authenticated user id stored by the auth middleware.
func actorID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// idParam parses the :id route parameter. A non-numeric id gets a plain 404,
// the same as an unroutable path. On failure the response is already written
// and errResponseWritten is returned; callers should check:
// if err != nil { return nil }
func idParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Resource", c.Params("id")))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps a service error onto an HTTP status using the
// handler's own code-to-status table. Codes absent from the table surface as
// a 500; several endpoints deliberately leave NOT_FOUND unmapped.
func respondServiceError(c *fiber.Ctx, err error, statuses map[string]int) error {
	if status, ok := statuses[models.ErrorCode(err)]; ok {
		return models.RespondWithError(c, status, err)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

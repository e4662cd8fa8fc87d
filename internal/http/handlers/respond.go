package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bazar/internal/apperr"
)

// fail maps tagged errors to HTTP statuses and a single user-facing message.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.Validation:
		status = fiber.StatusBadRequest
	case apperr.Auth:
		status = fiber.StatusUnauthorized
	case apperr.NotFound:
		status = fiber.StatusNotFound
	case apperr.Conflict:
		status = fiber.StatusConflict
	case apperr.Remote:
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{"error": apperr.Message(err)})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// ensureSID returns the session cookie, minting one when the client has
// none yet.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bazar/internal/domain"
	applog "bazar/internal/log"
	"bazar/internal/services"
)

// RequireUser enforces a signed-in user and stores it in Locals.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "sign in required"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "sign in required"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireSeller additionally gates seller-only flows on the user's role.
func RequireSeller(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "sign in required"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "sign in required"})
		}
		if !u.Role.CanSell() {
			applog.Security(c, "access.denied.seller", map[string]any{"user_id": u.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "seller account required"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

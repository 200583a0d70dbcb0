package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wattwise/wattwise/pkg/config"
	"github.com/wattwise/wattwise/pkg/libs"
)

// Verify resolves the opaque session cookie and attaches the
// authenticated user identity to the request context.
func Verify(auth *libs.Manager, cfg *config.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cfg.SessionName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "authentication required",
			})
		}
		userID, ok := auth.Resolve(token)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "session expired or invalid",
			})
		}
		c.Locals("userID", userID)
		c.Locals("sessionToken", token)
		return c.Next()
	}
}

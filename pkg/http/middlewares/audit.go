package middlewares

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wattwise/wattwise/pkg/utils"
)

// AuditLogging records every request with its outcome and latency.
func AuditLogging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Printf("%s %s %d %s %s",
			c.Method(), c.Path(), c.Response().StatusCode(),
			time.Since(start), utils.GetClientIP(c))
		return err
	}
}

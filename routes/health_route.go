package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func HealthRoute(app *fiber.App) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "E-commerce API is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

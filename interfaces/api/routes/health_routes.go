package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthChecker reports the state of each backing dependency by name.
type HealthChecker func(ctx context.Context) map[string]error

func SetupHealthRoutes(app *fiber.App, check HealthChecker) {
	app.Get("/health", func(c *fiber.Ctx) error {
		components := fiber.Map{}
		healthy := true

		if check != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
			defer cancel()
			for name, err := range check(ctx) {
				if err != nil {
					healthy = false
					components[name] = err.Error()
				} else {
					components[name] = "ok"
				}
			}
		}

		status, code := "ok", fiber.StatusOK
		if !healthy {
			status, code = "degraded", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":     status,
			"service":    "Taskboard API",
			"components": components,
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Taskboard API",
			"version": "1.0.0",
			"docs":    "/api/v1",
			"health":  "/health",
		})
	})
}

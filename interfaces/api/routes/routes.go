package routes

import (
	"github.com/gofiber/fiber/v2"

	wsmanager "taskboard/infrastructure/websocket"
	"taskboard/interfaces/api/handlers"
)

type Options struct {
	JWTSecret string
	WSManager *wsmanager.Manager
	Health    HealthChecker
}

func SetupRoutes(app *fiber.App, h *handlers.Handlers, opts Options) {
	SetupHealthRoutes(app, opts.Health)

	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h, opts.JWTSecret)
	SetupUserRoutes(api, h, opts.JWTSecret)
	SetupTaskRoutes(api, h, opts.JWTSecret)
	SetupProjectRoutes(api, h, opts.JWTSecret)

	if opts.WSManager != nil {
		SetupWebSocketRoutes(app, opts.WSManager, opts.JWTSecret)
	}
}

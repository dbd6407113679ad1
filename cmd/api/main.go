package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"taskboard/interfaces/api/handlers"
	"taskboard/interfaces/api/middleware"
	"taskboard/interfaces/api/routes"
	"taskboard/pkg/di"
	"taskboard/pkg/logger"
)

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	cfg := container.GetConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
		BodyLimit:    4 * 1024 * 1024,
	})

	setupGracefulShutdown(app, container)

	// request id must come before the logger
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(cfg.CORS.AllowedOrigins))
	app.Use("/api", middleware.RateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.Burst, 10*time.Minute))

	h := handlers.NewHandlers(container.GetHandlerServices())
	routes.SetupRoutes(app, h, routes.Options{
		JWTSecret: cfg.JWT.Secret,
		WSManager: container.WSManager,
		Health:    container.HealthCheck,
	})

	port := cfg.App.Port
	logger.Info("Server starting",
		"port", port,
		"env", cfg.App.Env,
		"app", cfg.App.Name,
	)
	logger.Info("Endpoints available",
		"health", "http://localhost:"+port+"/health",
		"api", "http://localhost:"+port+"/api/v1",
		"websocket", "ws://localhost:"+port+"/ws",
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(app *fiber.App, container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		if err := app.Shutdown(); err != nil {
			logger.Error("Error shutting down server", "error", err)
		}
		if err := container.Cleanup(); err != nil {
			logger.Error("Error during cleanup", "error", err)
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}

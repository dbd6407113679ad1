package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/domain/models"
	"taskboard/interfaces/api/handlers"
	"taskboard/interfaces/api/middleware"
)

func SetupUserRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	users := api.Group("/users")
	users.Use(middleware.Protected(jwtSecret))
	users.Put("/profile", h.UserHandler.UpdateProfile)
	users.Put("/password", h.UserHandler.ChangePassword)
	users.Get("/", middleware.RequireRole(models.RoleAdmin), h.UserHandler.ListUsers)
}

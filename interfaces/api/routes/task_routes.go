package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/interfaces/api/handlers"
	"taskboard/interfaces/api/middleware"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	tasks := api.Group("/tasks")
	tasks.Use(middleware.Protected(jwtSecret))
	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}

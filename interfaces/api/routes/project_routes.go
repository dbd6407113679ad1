package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/interfaces/api/handlers"
	"taskboard/interfaces/api/middleware"
)

func SetupProjectRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	projects := api.Group("/projects")
	projects.Use(middleware.Protected(jwtSecret))
	projects.Get("/", h.ProjectHandler.ListProjects)
	projects.Post("/", h.ProjectHandler.CreateProject)
	projects.Get("/:id", h.ProjectHandler.GetProject)
	projects.Put("/:id", h.ProjectHandler.UpdateProject)
	projects.Delete("/:id", h.ProjectHandler.DeleteProject)

	projects.Get("/:id/tasks", h.ProjectHandler.ListProjectTasks)
	projects.Post("/:id/tasks", h.ProjectHandler.AddTask)
	projects.Delete("/:id/tasks/:taskId", h.ProjectHandler.RemoveTask)
}

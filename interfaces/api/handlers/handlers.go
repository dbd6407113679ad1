package handlers

import (
	"taskboard/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService    services.UserService
	TaskService    services.TaskService
	ProjectService services.ProjectService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	TaskHandler    *TaskHandler
	ProjectHandler *ProjectHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:    NewAuthHandler(services.UserService),
		UserHandler:    NewUserHandler(services.UserService),
		TaskHandler:    NewTaskHandler(services.TaskService),
		ProjectHandler: NewProjectHandler(services.ProjectService),
	}
}

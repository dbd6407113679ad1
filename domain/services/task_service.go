package services

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/models"
)

// TaskService returns warnings alongside saved tasks; a warning never blocks the save.
type TaskService interface {
	CreateTask(ctx context.Context, actor *models.Actor, req *dto.CreateTaskRequest) (*models.Task, []string, error)
	GetTask(ctx context.Context, actor *models.Actor, taskID uuid.UUID) (*models.Task, error)
	UpdateTask(ctx context.Context, actor *models.Actor, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, []string, error)
	DeleteTask(ctx context.Context, actor *models.Actor, taskID uuid.UUID) error
	ListTasks(ctx context.Context, actor *models.Actor, req *dto.TaskFilterRequest) ([]*models.Task, int64, error)
}

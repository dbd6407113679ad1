package services

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/models"
)

type ProjectService interface {
	CreateProject(ctx context.Context, actor *models.Actor, req *dto.CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, actor *models.Actor, projectID uuid.UUID) (*models.Project, error)
	UpdateProject(ctx context.Context, actor *models.Actor, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, actor *models.Actor, projectID uuid.UUID) error
	ListProjects(ctx context.Context, actor *models.Actor, req *dto.ProjectFilterRequest) ([]*dto.ProjectSummaryResponse, int64, error)
	ListProjectTasks(ctx context.Context, actor *models.Actor, projectID uuid.UUID) ([]models.ProjectTask, error)

	// AddTaskToProject is idempotent: an existing link yields an info result.
	AddTaskToProject(ctx context.Context, actor *models.Actor, projectID, taskID uuid.UUID) (*dto.LinkResult, error)
	// RemoveTaskFromProject yields an info result and mutates nothing when the task is not linked.
	RemoveTaskFromProject(ctx context.Context, actor *models.Actor, projectID, taskID uuid.UUID) (*dto.LinkResult, error)
}

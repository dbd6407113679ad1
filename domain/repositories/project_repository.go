package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/models"
)

type ProjectFilter struct {
	Status  string
	OwnerID *uuid.UUID
}

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	// GetByID loads the project with its link rows in idx order.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Save persists the header and replaces the stored link rows with project.Tasks.
	Save(ctx context.Context, project *models.Project) error
	// SaveTaskLink persists a single link row.
	SaveTaskLink(ctx context.Context, link *models.ProjectTask) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ProjectFilter, offset, limit int) ([]*models.Project, int64, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	// ListProjectIDsByTask returns the projects holding a link row for taskID.
	ListProjectIDsByTask(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error)
}

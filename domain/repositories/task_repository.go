package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/models"
)

type TaskFilter struct {
	Status    string
	ProjectID *uuid.UUID
	OwnerID   *uuid.UUID
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	// GetByID returns an apperror NotFound when the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Task, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter TaskFilter, offset, limit int) ([]*models.Task, int64, error)
	// ClearProject drops the back-reference of every task pointing at projectID.
	ClearProject(ctx context.Context, projectID uuid.UUID) error
}

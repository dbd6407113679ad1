package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/domain/models"
	"taskboard/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, translate(err, "Task %s not found", id)
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tasks []*models.Task
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Save writes every column, so cleared pointers become NULL.
func (r *TaskRepositoryImpl) Save(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{}).Error
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter repositories.TaskFilter, offset, limit int) ([]*models.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []*models.Task
	err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&tasks).Error
	return tasks, total, err
}

func (r *TaskRepositoryImpl) ClearProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Update("project_id", nil).Error
}

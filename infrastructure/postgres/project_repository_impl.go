package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/domain/models"
	"taskboard/domain/repositories"
)

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func orderedLinks(db *gorm.DB) *gorm.DB {
	return db.Order("idx ASC")
}

// Create inserts the project together with its link rows.
func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Tasks", orderedLinks).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, translate(err, "Project %s not found", id)
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ProjectRepositoryImpl) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Save rewrites the header and replaces the link rows wholesale, so removed
// rows disappear and the idx order matches project.Tasks.
func (r *ProjectRepositoryImpl) Save(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectTask{}).Error; err != nil {
			return err
		}
		if len(project.Tasks) == 0 {
			return nil
		}
		return tx.Create(&project.Tasks).Error
	})
}

func (r *ProjectRepositoryImpl) SaveTaskLink(ctx context.Context, link *models.ProjectTask) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTask{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
}

func (r *ProjectRepositoryImpl) List(ctx context.Context, filter repositories.ProjectFilter, offset, limit int) ([]*models.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []*models.Project
	err := query.
		Preload("Tasks", orderedLinks).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepositoryImpl) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Project{}).Order("created_at ASC").Pluck("id", &ids).Error
	return ids, err
}

func (r *ProjectRepositoryImpl) ListProjectIDsByTask(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.ProjectTask{}).
		Where("task_id = ?", taskID).
		Distinct("project_id").
		Pluck("project_id", &ids).Error
	return ids, err
}

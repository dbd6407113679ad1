package postgres

import (
	"context"

	"gorm.io/gorm"

	"taskboard/domain/repositories"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) repositories.Store {
	return &Store{db: db}
}

func (s *Store) Tasks() repositories.TaskRepository {
	return NewTaskRepository(s.db)
}

func (s *Store) Projects() repositories.ProjectRepository {
	return NewProjectRepository(s.db)
}

// Transaction nested inside another one becomes a savepoint.
func (s *Store) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Package memstore is an in-memory repositories.Store. Transactions work on a
// copy of the data that replaces the committed state only when fn succeeds.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/domain/models"
	"taskboard/domain/repositories"
	"taskboard/pkg/apperror"
)

type state struct {
	tasks        map[uuid.UUID]*models.Task
	projects     map[uuid.UUID]*models.Project
	projectSaves int
}

func newState() *state {
	return &state{
		tasks:    make(map[uuid.UUID]*models.Task),
		projects: make(map[uuid.UUID]*models.Project),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, t := range s.tasks {
		c.tasks[id] = t.Clone()
	}
	for id, p := range s.projects {
		c.projects[id] = p.Clone()
	}
	c.projectSaves = s.projectSaves
	return c
}

type Store struct {
	mu *sync.Mutex // nil on transaction-bound stores, whose caller holds the root lock
	st *state
}

func New() *Store {
	return &Store{mu: &sync.Mutex{}, st: newState()}
}

func (s *Store) lock() func() {
	if s.mu == nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Tasks() repositories.TaskRepository {
	return &taskRepository{s: s}
}

func (s *Store) Projects() repositories.ProjectRepository {
	return &projectRepository{s: s}
}

// Transaction nested inside another transaction joins the outer one.
func (s *Store) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	if s.mu == nil {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{st: s.st.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

// ProjectSaveCount reports how many times an existing project was saved.
func (s *Store) ProjectSaveCount() int {
	defer s.lock()()
	return s.st.projectSaves
}

// ========== Tasks ==========

type taskRepository struct {
	s *Store
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	defer r.s.lock()()
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.s.st.tasks[task.ID] = task.Clone()
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	defer r.s.lock()()
	t, ok := r.s.st.tasks[id]
	if !ok {
		return nil, apperror.NotFound("Task %s not found", id)
	}
	return t.Clone(), nil
}

func (r *taskRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Task, error) {
	defer r.s.lock()()
	seen := make(map[uuid.UUID]bool, len(ids))
	var out []*models.Task
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if t, ok := r.s.st.tasks[id]; ok {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (r *taskRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	defer r.s.lock()()
	_, ok := r.s.st.tasks[id]
	return ok, nil
}

func (r *taskRepository) Save(ctx context.Context, task *models.Task) error {
	defer r.s.lock()()
	if _, ok := r.s.st.tasks[task.ID]; !ok {
		return apperror.NotFound("Task %s not found", task.ID)
	}
	task.UpdatedAt = time.Now()
	r.s.st.tasks[task.ID] = task.Clone()
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()
	delete(r.s.st.tasks, id)
	return nil
}

func (r *taskRepository) List(ctx context.Context, filter repositories.TaskFilter, offset, limit int) ([]*models.Task, int64, error) {
	defer r.s.lock()()
	var matched []*models.Task
	for _, t := range r.s.st.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.ProjectID != nil && (t.ProjectID == nil || *t.ProjectID != *filter.ProjectID) {
			continue
		}
		if filter.OwnerID != nil && t.OwnerID != *filter.OwnerID {
			continue
		}
		matched = append(matched, t.Clone())
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r *taskRepository) ClearProject(ctx context.Context, projectID uuid.UUID) error {
	defer r.s.lock()()
	for _, t := range r.s.st.tasks {
		if t.ProjectID != nil && *t.ProjectID == projectID {
			t.ProjectID = nil
		}
	}
	return nil
}

// ========== Projects ==========

type projectRepository struct {
	s *Store
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	defer r.s.lock()()
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	for _, p := range r.s.st.projects {
		if p.Slug == project.Slug {
			return apperror.Conflict("Project slug %s already exists", project.Slug)
		}
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	r.s.st.projects[project.ID] = project.Clone()
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	defer r.s.lock()()
	p, ok := r.s.st.projects[id]
	if !ok {
		return nil, apperror.NotFound("Project %s not found", id)
	}
	return p.Clone(), nil
}

func (r *projectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	defer r.s.lock()()
	_, ok := r.s.st.projects[id]
	return ok, nil
}

func (r *projectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	defer r.s.lock()()
	for _, p := range r.s.st.projects {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *projectRepository) Save(ctx context.Context, project *models.Project) error {
	defer r.s.lock()()
	if _, ok := r.s.st.projects[project.ID]; !ok {
		return apperror.NotFound("Project %s not found", project.ID)
	}
	project.UpdatedAt = time.Now()
	r.s.st.projects[project.ID] = project.Clone()
	r.s.st.projectSaves++
	return nil
}

func (r *projectRepository) SaveTaskLink(ctx context.Context, link *models.ProjectTask) error {
	defer r.s.lock()()
	p, ok := r.s.st.projects[link.ProjectID]
	if !ok {
		return apperror.NotFound("Project %s not found", link.ProjectID)
	}
	for i := range p.Tasks {
		if p.Tasks[i].ID == link.ID {
			c := *link
			p.Tasks[i] = c
			return nil
		}
	}
	return apperror.NotFound("Project task %s not found", link.ID)
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()
	delete(r.s.st.projects, id)
	return nil
}

func (r *projectRepository) List(ctx context.Context, filter repositories.ProjectFilter, offset, limit int) ([]*models.Project, int64, error) {
	defer r.s.lock()()
	var matched []*models.Project
	for _, p := range r.s.st.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.OwnerID != nil && p.OwnerID != *filter.OwnerID {
			continue
		}
		matched = append(matched, p.Clone())
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r *projectRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	defer r.s.lock()()
	ids := make([]uuid.UUID, 0, len(r.s.st.projects))
	for id := range r.s.st.projects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (r *projectRepository) ListProjectIDsByTask(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error) {
	defer r.s.lock()()
	var ids []uuid.UUID
	for id, p := range r.s.st.projects {
		if p.HasTask(taskID) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

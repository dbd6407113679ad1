package serviceimpl

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/services"
	"taskboard/infrastructure/memstore"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*ports.DomainEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event *ports.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []ports.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ports.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type mapCache struct {
	mu          sync.Mutex
	items       map[string]*ports.ProjectSummaryData
	hits        int
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]*ports.ProjectSummaryData)}
}

func (c *mapCache) Get(ctx context.Context, projectID string) (*ports.ProjectSummaryData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[projectID]
	if ok {
		c.hits++
	}
	return item, nil
}

func (c *mapCache) Set(ctx context.Context, summary *ports.ProjectSummaryData) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[summary.ID] = summary
	return nil
}

func (c *mapCache) Invalidate(ctx context.Context, projectIDs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range projectIDs {
		delete(c.items, id)
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}

type fixture struct {
	store    *memstore.Store
	events   *recordingPublisher
	cache    *mapCache
	tasks    services.TaskService
	projects services.ProjectService
	manager  *models.Actor
	user     *models.Actor
}

func newFixture() *fixture {
	store := memstore.New()
	perms := NewPermissionService()
	events := &recordingPublisher{}
	cache := newMapCache()
	return &fixture{
		store:    store,
		events:   events,
		cache:    cache,
		tasks:    NewTaskService(store, perms, events, cache),
		projects: NewProjectService(store, perms, events, cache),
		manager:  &models.Actor{ID: uuid.New(), Role: models.RoleTaskManager},
		user:     &models.Actor{ID: uuid.New(), Role: models.RoleTaskUser},
	}
}

func strPtr(s string) *string { return &s }

func (f *fixture) createTask(t *testing.T, actor *models.Actor, req *dto.CreateTaskRequest) *models.Task {
	t.Helper()
	task, _, err := f.tasks.CreateTask(context.Background(), actor, req)
	if err != nil {
		t.Fatalf("CreateTask(%s) failed: %v", req.Title, err)
	}
	return task
}

func (f *fixture) createProject(t *testing.T, actor *models.Actor, req *dto.CreateProjectRequest) *models.Project {
	t.Helper()
	project, err := f.projects.CreateProject(context.Background(), actor, req)
	if err != nil {
		t.Fatalf("CreateProject(%s) failed: %v", req.Title, err)
	}
	return project
}

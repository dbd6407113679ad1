package serviceimpl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/pkg/apperror"
)

func TestCreateProject_SlugAndRequestedTasks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "A", Status: models.TaskStatusCompleted})

	first := f.createProject(t, f.manager, &dto.CreateProjectRequest{
		Title: "Q3 Roadmap",
		Tasks: []string{a.ID.String(), uuid.NewString(), "not-a-uuid", a.ID.String()},
	})
	if first.Slug != "q3-roadmap" {
		t.Errorf("Expected slug q3-roadmap, got %s", first.Slug)
	}
	if len(first.Tasks) != 1 {
		t.Fatalf("Expected unknown and duplicate ids ignored, got %d rows", len(first.Tasks))
	}
	if first.Status != models.ProjectStatusCompleted {
		t.Errorf("Expected aggregated status Completed, got %s", first.Status)
	}

	second := f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Q3 Roadmap"})
	if second.Slug != "q3-roadmap-2" {
		t.Errorf("Expected de-duplicated slug, got %s", second.Slug)
	}

	stored, _ := f.store.Tasks().GetByID(ctx, a.ID)
	if stored.ProjectID != nil {
		t.Errorf("Expected creating a project not to rewrite task back-references")
	}
}

func TestAddTaskToProject_Idempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	project := f.createProject(t, f.user, &dto.CreateProjectRequest{Title: "Mine"})
	task := f.createTask(t, f.user, &dto.CreateTaskRequest{Title: "Link me"})

	res, err := f.projects.AddTaskToProject(ctx, f.user, project.ID, task.ID)
	if err != nil {
		t.Fatalf("AddTaskToProject failed: %v", err)
	}
	if res.Status != dto.LinkStatusSuccess {
		t.Errorf("Expected success, got %+v", res)
	}

	res, err = f.projects.AddTaskToProject(ctx, f.user, project.ID, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != dto.LinkStatusInfo || res.Message != "Task is already part of the project" {
		t.Errorf("Expected info result, got %+v", res)
	}

	stored, _ := f.store.Projects().GetByID(ctx, project.ID)
	if len(stored.Tasks) != 1 {
		t.Errorf("Expected one row, got %d", len(stored.Tasks))
	}
	linked, _ := f.store.Tasks().GetByID(ctx, task.ID)
	if linked.ProjectID == nil || *linked.ProjectID != project.ID {
		t.Errorf("Expected back-reference set, got %v", linked.ProjectID)
	}
}

func TestAddTaskToProject_DeniedOnForeignProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	project := f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Managed"})
	task := f.createTask(t, f.user, &dto.CreateTaskRequest{Title: "Mine"})

	_, err := f.projects.AddTaskToProject(ctx, f.user, project.ID, task.ID)
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("Expected permission denied, got %v", err)
	}
	stored, _ := f.store.Projects().GetByID(ctx, project.ID)
	if len(stored.Tasks) != 0 {
		t.Errorf("Expected nothing linked")
	}
}

func TestAddTaskToProject_DeniedOnForeignTask(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	other := &models.Actor{ID: uuid.New(), Role: models.RoleTaskUser}
	project := f.createProject(t, f.user, &dto.CreateProjectRequest{Title: "Mine"})
	task := f.createTask(t, other, &dto.CreateTaskRequest{Title: "Theirs"})

	_, err := f.projects.AddTaskToProject(ctx, f.user, project.ID, task.ID)
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("Expected permission denied, got %v", err)
	}

	stored, _ := f.store.Projects().GetByID(ctx, project.ID)
	if len(stored.Tasks) != 0 {
		t.Errorf("Expected no link row, got %d", len(stored.Tasks))
	}
	untouched, _ := f.store.Tasks().GetByID(ctx, task.ID)
	if untouched.ProjectID != nil {
		t.Errorf("Expected back-reference unchanged, got %v", untouched.ProjectID)
	}
}

func TestRemoveTaskFromProject_DeniedOnForeignTask(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	other := &models.Actor{ID: uuid.New(), Role: models.RoleTaskUser}
	project := f.createProject(t, f.user, &dto.CreateProjectRequest{Title: "Mine"})
	task := f.createTask(t, other, &dto.CreateTaskRequest{Title: "Theirs"})

	if _, err := f.projects.AddTaskToProject(ctx, f.manager, project.ID, task.ID); err != nil {
		t.Fatalf("AddTaskToProject as manager failed: %v", err)
	}
	saves := f.store.ProjectSaveCount()

	_, err := f.projects.RemoveTaskFromProject(ctx, f.user, project.ID, task.ID)
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("Expected permission denied, got %v", err)
	}

	stored, _ := f.store.Projects().GetByID(ctx, project.ID)
	if len(stored.Tasks) != 1 || stored.Tasks[0].TaskID != task.ID {
		t.Errorf("Expected link row kept, got %+v", stored.Tasks)
	}
	linked, _ := f.store.Tasks().GetByID(ctx, task.ID)
	if linked.ProjectID == nil || *linked.ProjectID != project.ID {
		t.Errorf("Expected back-reference kept, got %v", linked.ProjectID)
	}
	if f.store.ProjectSaveCount() != saves {
		t.Errorf("Expected no project save")
	}
}

func TestRemoveTaskFromProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	project := f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Unlink"})
	a := f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "A", ProjectID: strPtr(project.ID.String())})
	b := f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "B", ProjectID: strPtr(project.ID.String())})

	res, err := f.projects.RemoveTaskFromProject(ctx, f.manager, project.ID, a.ID)
	if err != nil {
		t.Fatalf("RemoveTaskFromProject failed: %v", err)
	}
	if res.Status != dto.LinkStatusSuccess {
		t.Errorf("Expected success, got %+v", res)
	}

	stored, _ := f.store.Projects().GetByID(ctx, project.ID)
	if len(stored.Tasks) != 1 || stored.Tasks[0].TaskID != b.ID {
		t.Fatalf("Expected exactly one row removed, got %+v", stored.Tasks)
	}
	unlinked, _ := f.store.Tasks().GetByID(ctx, a.ID)
	if unlinked.ProjectID != nil {
		t.Errorf("Expected back-reference cleared")
	}
}

func TestRemoveTaskFromProject_NotMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	project := f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Stable"})
	outsider := f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "Outside"})
	saves := f.store.ProjectSaveCount()

	res, err := f.projects.RemoveTaskFromProject(ctx, f.manager, project.ID, outsider.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != dto.LinkStatusInfo || res.Message != "Task is not part of the project" {
		t.Errorf("Expected info result, got %+v", res)
	}
	if f.store.ProjectSaveCount() != saves {
		t.Errorf("Expected no project save")
	}
}

func TestDeleteProject_OrphansTasks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	project := f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Doomed"})
	task := f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "Survivor", ProjectID: strPtr(project.ID.String())})

	if err := f.projects.DeleteProject(ctx, f.user, project.ID); !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("Expected task_user to be denied on a foreign project, got %v", err)
	}
	if err := f.projects.DeleteProject(ctx, f.manager, project.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	survivor, err := f.store.Tasks().GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("Expected task to survive, got %v", err)
	}
	if survivor.ProjectID != nil {
		t.Errorf("Expected back-reference cleared")
	}
}

func TestUpdateProject_AggregatesOnSave(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	project := f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Status"})
	f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "Done", Status: models.TaskStatusCompleted, ProjectID: strPtr(project.ID.String())})

	updated, err := f.projects.UpdateProject(ctx, f.manager, project.ID, &dto.UpdateProjectRequest{Status: strPtr(models.ProjectStatusOnHold)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.ProjectStatusCompleted {
		t.Errorf("Expected aggregator to override manual status, got %s", updated.Status)
	}
}

func TestListProjects_ProgressAndCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	project := f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Progress"})
	f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "Done", Status: models.TaskStatusCompleted, ProjectID: strPtr(project.ID.String())})
	open := f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "Open", ProjectID: strPtr(project.ID.String())})

	list, total, err := f.projects.ListProjects(ctx, f.user, &dto.ProjectFilterRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || list[0].TaskCount != 2 || list[0].Progress != 50 {
		t.Fatalf("Expected 2 tasks at 50%%, got %+v", list[0])
	}

	if _, _, err := f.projects.ListProjects(ctx, f.user, &dto.ProjectFilterRequest{}); err != nil {
		t.Fatal(err)
	}
	if f.cache.hits != 1 {
		t.Errorf("Expected second listing served from cache, got %d hits", f.cache.hits)
	}

	if _, _, err := f.tasks.UpdateTask(ctx, f.manager, open.ID, &dto.UpdateTaskRequest{Status: strPtr(models.TaskStatusCompleted)}); err != nil {
		t.Fatal(err)
	}
	list, _, _ = f.projects.ListProjects(ctx, f.user, &dto.ProjectFilterRequest{})
	if list[0].Progress != 100 || list[0].Status != models.ProjectStatusCompleted {
		t.Errorf("Expected invalidated summary at 100%%, got %+v", list[0])
	}
}

func TestListProjects_EmptyProjectHasZeroProgress(t *testing.T) {
	f := newFixture()
	f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Empty"})

	list, _, err := f.projects.ListProjects(context.Background(), f.user, &dto.ProjectFilterRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if list[0].TaskCount != 0 || list[0].Progress != 0 {
		t.Errorf("Expected 0 tasks at 0%%, got %+v", list[0])
	}
}

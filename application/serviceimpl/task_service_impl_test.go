package serviceimpl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"taskboard/application/lifecycle"
	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/pkg/apperror"
	"taskboard/pkg/utils"
)

func TestCreateTask_Defaults(t *testing.T) {
	f := newFixture()
	task := f.createTask(t, f.user, &dto.CreateTaskRequest{Title: "  Draft plan  "})

	if task.Title != "Draft plan" {
		t.Errorf("Expected trimmed title, got %q", task.Title)
	}
	if task.Status != models.TaskStatusOpen || task.Priority != models.PriorityMedium {
		t.Errorf("Expected Open/Medium defaults, got %s/%s", task.Status, task.Priority)
	}
	if task.OwnerID != f.user.ID {
		t.Errorf("Expected owner to be the actor")
	}
}

func TestCreateTask_LinksToProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	project := f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Website"})

	task := f.createTask(t, f.manager, &dto.CreateTaskRequest{
		Title:     "Homepage",
		StartDate: "2024-01-10",
		EndDate:   "2024-01-20",
		ProjectID: strPtr(project.ID.String()),
	})

	stored, _ := f.store.Projects().GetByID(ctx, project.ID)
	if len(stored.Tasks) != 1 || stored.Tasks[0].TaskID != task.ID {
		t.Fatalf("Expected one row for the new task, got %+v", stored.Tasks)
	}
	if got := utils.FormatDate(stored.StartDate); got == nil || *got != "2024-01-10" {
		t.Errorf("Expected project start widened to 2024-01-10, got %v", got)
	}

	types := f.events.types()
	if len(types) < 2 || types[len(types)-2] != ports.EventTaskSaved || types[len(types)-1] != ports.EventProjectSaved {
		t.Errorf("Expected task.saved then project.saved, got %v", types)
	}
}

func TestCreateTask_UnknownProject(t *testing.T) {
	f := newFixture()
	_, _, err := f.tasks.CreateTask(context.Background(), f.user, &dto.CreateTaskRequest{
		Title:     "Lost",
		ProjectID: strPtr(uuid.NewString()),
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("Expected NotFound, got %v", err)
	}

	_, total, _ := f.store.Tasks().List(context.Background(), repositories.TaskFilter{}, 0, 10)
	if total != 0 {
		t.Errorf("Expected no task persisted, got %d", total)
	}
}

func TestCreateTask_RejectsInvertedDates(t *testing.T) {
	f := newFixture()
	_, _, err := f.tasks.CreateTask(context.Background(), f.user, &dto.CreateTaskRequest{
		Title:     "Backwards",
		StartDate: "2024-02-01",
		EndDate:   "2024-01-01",
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestUpdateTask_PartialUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.createTask(t, f.user, &dto.CreateTaskRequest{
		Title:       "Report",
		Description: "quarterly",
		Details:     "keep",
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-31",
	})

	updated, _, err := f.tasks.UpdateTask(ctx, f.user, task.ID, &dto.UpdateTaskRequest{
		Description: strPtr(""),
		EndDate:     strPtr(""),
		Priority:    strPtr(models.PriorityHigh),
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	if updated.Description != "" || updated.EndDate != nil {
		t.Errorf("Expected supplied empty values to clear, got %q %v", updated.Description, updated.EndDate)
	}
	if updated.Title != "Report" || updated.Details != "keep" || updated.StartDate == nil {
		t.Errorf("Expected omitted fields untouched, got %+v", updated)
	}
	if updated.Priority != models.PriorityHigh {
		t.Errorf("Expected priority High, got %s", updated.Priority)
	}
}

func TestUpdateTask_TitleCannotBeCleared(t *testing.T) {
	f := newFixture()
	task := f.createTask(t, f.user, &dto.CreateTaskRequest{Title: "Keep me"})

	_, _, err := f.tasks.UpdateTask(context.Background(), f.user, task.ID, &dto.UpdateTaskRequest{Title: strPtr("  ")})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestUpdateTask_ReopenWarning(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.createTask(t, f.user, &dto.CreateTaskRequest{Title: "Finish", Status: models.TaskStatusCompleted})

	_, warnings, err := f.tasks.UpdateTask(ctx, f.user, task.ID, &dto.UpdateTaskRequest{Status: strPtr(models.TaskStatusOpen)})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if len(warnings) != 1 || warnings[0] != lifecycle.ReopenWarning {
		t.Errorf("Expected reopen warning, got %v", warnings)
	}

	stored, _ := f.store.Tasks().GetByID(ctx, task.ID)
	if stored.Status != models.TaskStatusOpen {
		t.Errorf("Expected save to proceed despite warning, got %s", stored.Status)
	}
}

func TestUpdateTask_RecordLevelPermission(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	other := &models.Actor{ID: uuid.New(), Role: models.RoleTaskUser}
	task := f.createTask(t, f.user, &dto.CreateTaskRequest{Title: "Mine"})

	_, _, err := f.tasks.UpdateTask(ctx, other, task.ID, &dto.UpdateTaskRequest{Title: strPtr("Theirs")})
	if !errors.Is(err, apperror.ErrPermissionDenied) {
		t.Fatalf("Expected permission denied, got %v", err)
	}
	stored, _ := f.store.Tasks().GetByID(ctx, task.ID)
	if stored.Title != "Mine" {
		t.Errorf("Expected no partial change, got %q", stored.Title)
	}

	if _, _, err := f.tasks.UpdateTask(ctx, f.manager, task.ID, &dto.UpdateTaskRequest{Title: strPtr("Managed")}); err != nil {
		t.Errorf("Expected manager to update any task, got %v", err)
	}
}

func TestDeleteTask_RemovesLinkRows(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	project := f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Cleanup"})
	keep := f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "Keep", ProjectID: strPtr(project.ID.String())})
	drop := f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "Drop", ProjectID: strPtr(project.ID.String())})

	if err := f.tasks.DeleteTask(ctx, f.manager, drop.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	stored, _ := f.store.Projects().GetByID(ctx, project.ID)
	if len(stored.Tasks) != 1 || stored.Tasks[0].TaskID != keep.ID {
		t.Errorf("Expected only the kept task linked, got %+v", stored.Tasks)
	}
	if _, err := f.store.Tasks().GetByID(ctx, drop.ID); !apperror.IsNotFound(err) {
		t.Errorf("Expected task deleted, got %v", err)
	}
}

func TestListTasks_FiltersByProjectAndStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	project := f.createProject(t, f.manager, &dto.CreateProjectRequest{Title: "Filters"})
	f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "In", ProjectID: strPtr(project.ID.String())})
	f.createTask(t, f.manager, &dto.CreateTaskRequest{Title: "Done", Status: models.TaskStatusCompleted})

	tasks, total, err := f.tasks.ListTasks(ctx, f.user, &dto.TaskFilterRequest{Project: project.ID.String()})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || tasks[0].Title != "In" {
		t.Errorf("Expected the project task only, got %d", total)
	}

	_, total, _ = f.tasks.ListTasks(ctx, f.user, &dto.TaskFilterRequest{Status: models.TaskStatusCompleted})
	if total != 1 {
		t.Errorf("Expected one completed task, got %d", total)
	}
}

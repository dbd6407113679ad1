package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"taskboard/domain/models"
	"taskboard/domain/repositories"
	"taskboard/infrastructure/memstore"
	"taskboard/pkg/apperror"
)

func date(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func newTask(title, status string) *models.Task {
	return &models.Task{
		Title:    title,
		Status:   status,
		Priority: models.PriorityMedium,
		OwnerID:  uuid.New(),
	}
}

func mustCreateTask(t *testing.T, store *memstore.Store, task *models.Task) *models.Task {
	t.Helper()
	res, err := SaveTask(context.Background(), store, task)
	if err != nil {
		t.Fatalf("SaveTask(%s) failed: %v", task.Title, err)
	}
	return res.Task
}

func mustCreateProject(t *testing.T, store *memstore.Store, tasks ...*models.Task) *models.Project {
	t.Helper()
	p := &models.Project{Title: "Launch", Slug: uuid.NewString(), Status: models.ProjectStatusPlanning, OwnerID: uuid.New()}
	for _, task := range tasks {
		p.AppendTask(task)
	}
	if err := SaveProject(context.Background(), store, p); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}
	return p
}

// ========== Task validator ==========

func TestValidateTask_RejectsStartAfterEnd(t *testing.T) {
	task := newTask("Write docs", models.TaskStatusOpen)
	task.StartDate = date("2024-03-10")
	task.EndDate = date("2024-03-01")

	_, err := ValidateTask(task, nil)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if err.Error() != "End Date cannot be before Start Date" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestValidateTask_AllowsSameDayAndOpenRanges(t *testing.T) {
	task := newTask("Write docs", models.TaskStatusOpen)
	task.StartDate = date("2024-03-01")
	task.EndDate = date("2024-03-01")
	if _, err := ValidateTask(task, nil); err != nil {
		t.Errorf("Expected same-day range to pass, got %v", err)
	}

	task.EndDate = nil
	if _, err := ValidateTask(task, nil); err != nil {
		t.Errorf("Expected open-ended range to pass, got %v", err)
	}
}

func TestValidateTask_ReopenWarning(t *testing.T) {
	previous := newTask("Ship", models.TaskStatusCompleted)

	cases := []struct {
		status string
		warn   bool
	}{
		{models.TaskStatusOpen, true},
		{models.TaskStatusInProgress, true},
		{models.TaskStatusOnHold, false},
		{models.TaskStatusCompleted, false},
	}
	for _, tc := range cases {
		task := previous.Clone()
		task.Status = tc.status
		warnings, err := ValidateTask(task, previous)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.status, err)
		}
		if got := len(warnings) == 1 && warnings[0] == ReopenWarning; got != tc.warn {
			t.Errorf("%s: expected warning=%v, got %v", tc.status, tc.warn, warnings)
		}
	}

	if warnings, _ := ValidateTask(newTask("New", models.TaskStatusOpen), nil); len(warnings) != 0 {
		t.Errorf("Expected no warning on create, got %v", warnings)
	}
}

// ========== Project aggregator ==========

func TestAggregateProject_Status(t *testing.T) {
	cases := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"all completed", []string{models.TaskStatusCompleted, models.TaskStatusCompleted}, models.ProjectStatusCompleted},
		{"some completed", []string{models.TaskStatusCompleted, models.TaskStatusOpen}, models.ProjectStatusActive},
		{"none completed", []string{models.TaskStatusOpen}, models.ProjectStatusPlanning},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.New()
			var tasks []*models.Task
			for i, status := range tc.statuses {
				tasks = append(tasks, mustCreateTask(t, store, newTask("T"+string(rune('A'+i)), status)))
			}
			p := mustCreateProject(t, store, tasks...)
			if p.Status != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, p.Status)
			}
		})
	}
}

func TestAggregateProject_UsesCurrentTaskStatus(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	task := mustCreateTask(t, store, newTask("A", models.TaskStatusOpen))

	p := &models.Project{Title: "P", Status: models.ProjectStatusPlanning}
	p.AppendTask(task)

	// the stored task is completed, the cached row still says Open
	stored, _ := store.Tasks().GetByID(ctx, task.ID)
	stored.Status = models.TaskStatusCompleted
	if err := store.Tasks().Save(ctx, stored); err != nil {
		t.Fatal(err)
	}

	if err := AggregateProject(ctx, p, store.Tasks()); err != nil {
		t.Fatal(err)
	}
	if p.Status != models.ProjectStatusCompleted {
		t.Errorf("Expected Completed from fresh lookup, got %s", p.Status)
	}
}

func TestAggregateProject_NoRowsLeavesProjectAlone(t *testing.T) {
	p := &models.Project{Title: "Empty", Status: models.ProjectStatusOnHold, StartDate: date("2024-05-01")}
	if err := AggregateProject(context.Background(), p, memstore.New().Tasks()); err != nil {
		t.Fatal(err)
	}
	if p.Status != models.ProjectStatusOnHold || !p.StartDate.Equal(*date("2024-05-01")) {
		t.Errorf("Expected project untouched, got %s %v", p.Status, p.StartDate)
	}
}

func TestAggregateProject_DatesOnlyWiden(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	task := newTask("A", models.TaskStatusOpen)
	task.StartDate = date("2024-01-15")
	task.EndDate = date("2024-03-01")
	task = mustCreateTask(t, store, task)

	p := &models.Project{Title: "P", StartDate: date("2024-02-01"), EndDate: date("2024-04-01")}
	p.AppendTask(task)
	if err := AggregateProject(ctx, p, store.Tasks()); err != nil {
		t.Fatal(err)
	}
	if !p.StartDate.Equal(*date("2024-01-15")) {
		t.Errorf("Expected start moved to 2024-01-15, got %v", p.StartDate)
	}
	if !p.EndDate.Equal(*date("2024-04-01")) {
		t.Errorf("Expected end kept at 2024-04-01, got %v", p.EndDate)
	}

	p.StartDate = date("2024-01-01")
	if err := AggregateProject(ctx, p, store.Tasks()); err != nil {
		t.Fatal(err)
	}
	if !p.StartDate.Equal(*date("2024-01-01")) {
		t.Errorf("Expected start kept at 2024-01-01, got %v", p.StartDate)
	}

	p.StartDate, p.EndDate = nil, nil
	if err := AggregateProject(ctx, p, store.Tasks()); err != nil {
		t.Fatal(err)
	}
	if p.StartDate == nil || p.EndDate == nil || !p.EndDate.Equal(*date("2024-03-01")) {
		t.Errorf("Expected unset dates filled from tasks, got %v %v", p.StartDate, p.EndDate)
	}
}

func TestAggregateProject_MissingTaskBlocksCompletion(t *testing.T) {
	store := memstore.New()
	done := mustCreateTask(t, store, newTask("Done", models.TaskStatusCompleted))

	p := &models.Project{Title: "P", Status: models.ProjectStatusPlanning}
	p.AppendTask(done)
	p.Tasks = append(p.Tasks, models.ProjectTask{TaskID: uuid.New()})

	if err := AggregateProject(context.Background(), p, store.Tasks()); err != nil {
		t.Fatal(err)
	}
	if p.Status != models.ProjectStatusActive {
		t.Errorf("Expected Active with one vanished task, got %s", p.Status)
	}
}

// ========== Link validator ==========

func TestValidateTaskLinks_MissingTask(t *testing.T) {
	missing := uuid.New()
	p := &models.Project{Title: "P", Tasks: []models.ProjectTask{{TaskID: missing}}}

	err := ValidateTaskLinks(context.Background(), p, memstore.New().Tasks())
	if !apperror.IsNotFound(err) {
		t.Fatalf("Expected NotFound, got %v", err)
	}
	if err.Error() != "Task "+missing.String()+" does not exist" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestSaveProject_RefreshesCachedFields(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	task := mustCreateTask(t, store, newTask("Original", models.TaskStatusOpen))

	p := &models.Project{Title: "P", Status: models.ProjectStatusPlanning}
	p.Tasks = []models.ProjectTask{{TaskID: task.ID, TaskTitle: "stale", Status: "stale"}}
	if err := SaveProject(ctx, store, p); err != nil {
		t.Fatal(err)
	}

	stored, err := store.Projects().GetByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	link := stored.Tasks[0]
	if link.TaskTitle != "Original" || link.Status != models.TaskStatusOpen || link.Priority != models.PriorityMedium {
		t.Errorf("Expected cached fields refreshed, got %+v", link)
	}
	if link.Idx != 1 || link.ProjectID != p.ID {
		t.Errorf("Expected idx 1 bound to project, got %+v", link)
	}
}

// ========== Synchronizer ==========

func TestSaveTask_AppendsRowOnce(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	p := mustCreateProject(t, store)

	task := newTask("Linked", models.TaskStatusOpen)
	task.ProjectID = &p.ID
	res, err := SaveTask(ctx, store, task)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sync != SyncLinked {
		t.Errorf("Expected linked on first save, got %s", res.Sync)
	}

	for i := 0; i < 3; i++ {
		if _, err := SaveTask(ctx, store, res.Task.Clone()); err != nil {
			t.Fatal(err)
		}
	}

	stored, _ := store.Projects().GetByID(ctx, p.ID)
	if len(stored.Tasks) != 1 {
		t.Fatalf("Expected exactly one row after repeated saves, got %d", len(stored.Tasks))
	}
	if stored.Tasks[0].TaskTitle != "Linked" {
		t.Errorf("Expected row populated from task, got %+v", stored.Tasks[0])
	}
}

func TestSaveTask_ResavesOnlyOnTrackedChange(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	p := mustCreateProject(t, store)

	task := newTask("Tracked", models.TaskStatusOpen)
	task.ProjectID = &p.ID
	res, err := SaveTask(ctx, store, task)
	if err != nil {
		t.Fatal(err)
	}
	saves := store.ProjectSaveCount()

	// title only: not tracked
	edited := res.Task.Clone()
	edited.Title = "Renamed"
	res, err = SaveTask(ctx, store, edited)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sync != SyncUnchanged || store.ProjectSaveCount() != saves {
		t.Errorf("Expected no project save on title change, got %s (%d saves)", res.Sync, store.ProjectSaveCount()-saves)
	}

	edited = res.Task.Clone()
	edited.Status = models.TaskStatusCompleted
	res, err = SaveTask(ctx, store, edited)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sync != SyncResaved {
		t.Errorf("Expected resave on status change, got %s", res.Sync)
	}

	stored, _ := store.Projects().GetByID(ctx, p.ID)
	if stored.Status != models.ProjectStatusCompleted {
		t.Errorf("Expected project Completed, got %s", stored.Status)
	}
	if stored.Tasks[0].Status != models.TaskStatusCompleted || stored.Tasks[0].TaskTitle != "Renamed" {
		t.Errorf("Expected row refreshed on resave, got %+v", stored.Tasks[0])
	}
}

func TestSaveTask_MissingProjectRollsBack(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	missing := uuid.New()
	task := newTask("Orphan", models.TaskStatusOpen)
	task.ProjectID = &missing

	err := store.Transaction(ctx, func(tx repositories.Store) error {
		_, err := SaveTask(ctx, tx, task)
		return err
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("Expected NotFound, got %v", err)
	}

	_, total, _ := store.Tasks().List(ctx, repositories.TaskFilter{}, 0, 10)
	if total != 0 {
		t.Errorf("Expected task save rolled back, found %d tasks", total)
	}
}

func TestSaveTask_ReturnsReopenWarning(t *testing.T) {
	store := memstore.New()
	done := mustCreateTask(t, store, newTask("Done", models.TaskStatusCompleted))

	reopened := done.Clone()
	reopened.Status = models.TaskStatusInProgress
	res, err := SaveTask(context.Background(), store, reopened)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != ReopenWarning {
		t.Errorf("Expected reopen warning, got %v", res.Warnings)
	}
}

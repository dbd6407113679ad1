package lifecycle

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/models"
	"taskboard/domain/repositories"
	"taskboard/pkg/logger"
)

type TaskSaveResult struct {
	Task     *models.Task
	Warnings []string
	Sync     SyncOutcome
	// Project is the synchronized project, nil when Sync is SyncSkipped.
	Project *models.Project
}

// SaveTask runs validate, persist and synchronize for task against store.
// store should be bound to a transaction; any error leaves the caller to roll back.
// A task with a nil ID is created.
func SaveTask(ctx context.Context, store repositories.Store, task *models.Task) (*TaskSaveResult, error) {
	var previous *models.Task
	if task.ID != uuid.Nil {
		stored, err := store.Tasks().GetByID(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		previous = stored
	}

	warnings, err := ValidateTask(task, previous)
	if err != nil {
		return nil, err
	}

	if previous == nil {
		task.ID = uuid.New()
		if err := store.Tasks().Create(ctx, task); err != nil {
			return nil, err
		}
	} else if err := store.Tasks().Save(ctx, task); err != nil {
		return nil, err
	}

	saveProject := func(ctx context.Context, project *models.Project) error {
		return SaveProject(ctx, store, project)
	}
	outcome, project, err := SyncTaskToProject(ctx, task, previous, store.Projects(), saveProject)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "Task saved", "task_id", task.ID, "sync", outcome.String())
	return &TaskSaveResult{Task: task, Warnings: warnings, Sync: outcome, Project: project}, nil
}

// SaveProject runs aggregate, link validation, persist and link cache refresh.
// It never saves a task, so a task save that reaches here cannot recurse.
func SaveProject(ctx context.Context, store repositories.Store, project *models.Project) error {
	if err := AggregateProject(ctx, project, store.Tasks()); err != nil {
		return err
	}
	if err := ValidateTaskLinks(ctx, project, store.Tasks()); err != nil {
		return err
	}

	isNew := project.ID == uuid.Nil
	if isNew {
		project.ID = uuid.New()
	}
	for i := range project.Tasks {
		link := &project.Tasks[i]
		if link.ID == uuid.Nil {
			link.ID = uuid.New()
		}
		link.ProjectID = project.ID
		link.Idx = i + 1
	}

	if isNew {
		if err := store.Projects().Create(ctx, project); err != nil {
			return err
		}
	} else if err := store.Projects().Save(ctx, project); err != nil {
		return err
	}

	changed, err := RefreshTaskLinks(ctx, project, store.Tasks())
	if err != nil {
		return err
	}
	for _, link := range changed {
		if err := store.Projects().SaveTaskLink(ctx, link); err != nil {
			return err
		}
	}

	logger.DebugContext(ctx, "Project saved", "project_id", project.ID, "status", project.Status, "links", len(project.Tasks), "refreshed", len(changed))
	return nil
}

package lifecycle

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/models"
)

type SyncOutcome int

const (
	// SyncSkipped: the task has no project.
	SyncSkipped SyncOutcome = iota
	// SyncLinked: a new row was appended and the project saved.
	SyncLinked
	// SyncResaved: the row existed and a tracked field changed, so the project was saved again.
	SyncResaved
	// SyncUnchanged: the row existed and nothing tracked changed.
	SyncUnchanged
)

func (o SyncOutcome) String() string {
	switch o {
	case SyncLinked:
		return "linked"
	case SyncResaved:
		return "resaved"
	case SyncUnchanged:
		return "unchanged"
	default:
		return "skipped"
	}
}

type ProjectLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// ProjectSaver runs the full project save pipeline.
type ProjectSaver func(ctx context.Context, project *models.Project) error

// SyncTaskToProject makes sure the project named by task.ProjectID holds an
// up to date row for task. It runs after task has been persisted; previous is
// the version stored before this save, nil on create.
func SyncTaskToProject(ctx context.Context, task, previous *models.Task, projects ProjectLoader, save ProjectSaver) (SyncOutcome, *models.Project, error) {
	if !task.HasProject() {
		return SyncSkipped, nil, nil
	}

	project, err := projects.GetByID(ctx, *task.ProjectID)
	if err != nil {
		return SyncSkipped, nil, err
	}

	if project.FindTaskLink(task.ID) < 0 {
		project.AppendTask(task)
		if err := save(ctx, project); err != nil {
			return SyncSkipped, nil, err
		}
		return SyncLinked, project, nil
	}

	if !trackedFieldsChanged(task, previous) {
		return SyncUnchanged, project, nil
	}
	if err := save(ctx, project); err != nil {
		return SyncSkipped, nil, err
	}
	return SyncResaved, project, nil
}

// trackedFieldsChanged treats a missing previous version as a change.
func trackedFieldsChanged(task, previous *models.Task) bool {
	if previous == nil {
		return true
	}
	return task.Status != previous.Status ||
		!models.SameDate(task.StartDate, previous.StartDate) ||
		!models.SameDate(task.EndDate, previous.EndDate)
}

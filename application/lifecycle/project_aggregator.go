package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard/domain/models"
)

// TaskLookup loads the current persisted state of tasks. Ids that do not
// exist are absent from the result.
type TaskLookup interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Task, error)
}

// AggregateProject derives the project status and date range from the
// current state of its linked tasks. The cached copies on the link rows are
// not trusted. A project without rows is left alone.
func AggregateProject(ctx context.Context, project *models.Project, tasks TaskLookup) error {
	if len(project.Tasks) == 0 {
		return nil
	}

	current, err := lookupLinked(ctx, project, tasks)
	if err != nil {
		return err
	}

	aggregateStatus(project, current)
	aggregateDates(project, current)
	return nil
}

func lookupLinked(ctx context.Context, project *models.Project, tasks TaskLookup) (map[uuid.UUID]*models.Task, error) {
	ids := make([]uuid.UUID, 0, len(project.Tasks))
	for _, link := range project.Tasks {
		ids = append(ids, link.TaskID)
	}

	found, err := tasks.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.Task, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	return byID, nil
}

// aggregateStatus counts every row, so a row whose task has vanished keeps
// the project from reaching Completed.
func aggregateStatus(project *models.Project, current map[uuid.UUID]*models.Task) {
	total := len(project.Tasks)
	completed := 0
	for _, link := range project.Tasks {
		if t, ok := current[link.TaskID]; ok && t.IsCompleted() {
			completed++
		}
	}

	switch {
	case total > 0 && completed == total:
		project.Status = models.ProjectStatusCompleted
	case completed > 0:
		project.Status = models.ProjectStatusActive
	}
}

// aggregateDates only widens the range: start moves earlier, end moves later.
func aggregateDates(project *models.Project, current map[uuid.UUID]*models.Task) {
	var earliest, latest *time.Time
	for _, link := range project.Tasks {
		t, ok := current[link.TaskID]
		if !ok {
			continue
		}
		if t.StartDate != nil && (earliest == nil || t.StartDate.Before(*earliest)) {
			earliest = t.StartDate
		}
		if t.EndDate != nil && (latest == nil || t.EndDate.After(*latest)) {
			latest = t.EndDate
		}
	}

	if earliest != nil && (project.StartDate == nil || project.StartDate.After(*earliest)) {
		d := *earliest
		project.StartDate = &d
	}
	if latest != nil && (project.EndDate == nil || project.EndDate.Before(*latest)) {
		d := *latest
		project.EndDate = &d
	}
}

package lifecycle

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/models"
	"taskboard/pkg/apperror"
)

type TaskExistence interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ValidateTaskLinks rejects the first row that references a missing task.
func ValidateTaskLinks(ctx context.Context, project *models.Project, tasks TaskExistence) error {
	for _, link := range project.Tasks {
		if link.TaskID == uuid.Nil {
			continue
		}
		ok, err := tasks.Exists(ctx, link.TaskID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NotFound("Task %s does not exist", link.TaskID)
		}
	}
	return nil
}

// RefreshTaskLinks overwrites the cached task fields of every row from the
// stored task and returns the rows whose cache changed. The task itself is
// never written.
func RefreshTaskLinks(ctx context.Context, project *models.Project, tasks TaskLookup) ([]*models.ProjectTask, error) {
	if len(project.Tasks) == 0 {
		return nil, nil
	}

	current, err := lookupLinked(ctx, project, tasks)
	if err != nil {
		return nil, err
	}

	var changed []*models.ProjectTask
	for i := range project.Tasks {
		link := &project.Tasks[i]
		t, ok := current[link.TaskID]
		if !ok {
			continue
		}
		if linkMatches(link, t) {
			continue
		}
		link.CopyFrom(t)
		changed = append(changed, link)
	}
	return changed, nil
}

func linkMatches(link *models.ProjectTask, t *models.Task) bool {
	return link.TaskTitle == t.Title &&
		link.Status == t.Status &&
		link.Priority == t.Priority &&
		models.SameDate(link.StartDate, t.StartDate) &&
		models.SameDate(link.EndDate, t.EndDate)
}

package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/pkg/logger"
)

// notifier fans post-commit side effects out to the optional event publisher
// and summary cache. Failures are logged and never undo the committed write.
type notifier struct {
	events ports.EventPublisherPort
	cache  ports.ProjectSummaryCachePort
}

func (n notifier) publish(ctx context.Context, eventType ports.EventType, actor *models.Actor, taskID, projectID *uuid.UUID, status string, warnings []string) {
	if n.events == nil {
		return
	}
	event := &ports.DomainEvent{
		Type:       eventType,
		Status:     status,
		Warnings:   warnings,
		OccurredAt: time.Now().UTC(),
	}
	if taskID != nil {
		event.TaskID = taskID.String()
	}
	if projectID != nil {
		event.ProjectID = projectID.String()
	}
	if actor != nil {
		event.ActorID = actor.ID.String()
	}
	if err := n.events.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish domain event", "type", eventType, "error", err)
	}
}

func (n notifier) invalidate(ctx context.Context, projectIDs ...uuid.UUID) {
	if n.cache == nil || len(projectIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(projectIDs))
	seen := make(map[uuid.UUID]bool, len(projectIDs))
	for _, id := range projectIDs {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, id.String())
	}
	if len(keys) == 0 {
		return
	}
	if err := n.cache.Invalidate(ctx, keys...); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate project summaries", "projects", keys, "error", err)
	}
}

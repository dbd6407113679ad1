package ports

import (
	"context"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Event Publisher Port - domain events emitted after a unit of work commits
// ═══════════════════════════════════════════════════════════════════════════════

type EventType string

const (
	EventTaskSaved      EventType = "task.saved"
	EventTaskDeleted    EventType = "task.deleted"
	EventProjectSaved   EventType = "project.saved"
	EventProjectDeleted EventType = "project.deleted"
	EventTaskLinked     EventType = "project.task_linked"
	EventTaskUnlinked   EventType = "project.task_unlinked"
)

// DomainEvent is a plain struct so adapters carry no domain imports.
type DomainEvent struct {
	Type       EventType `json:"type"`
	TaskID     string    `json:"taskId,omitempty"`
	ProjectID  string    `json:"projectId,omitempty"`
	Status     string    `json:"status,omitempty"`
	Warnings   []string  `json:"warnings,omitempty"`
	ActorID    string    `json:"actorId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type EventPublisherPort interface {
	Publish(ctx context.Context, event *DomainEvent) error
}

type EventHandler func(event *DomainEvent)

// EventSubscriberPort delivers domain events, possibly published by other instances.
type EventSubscriberPort interface {
	Subscribe(ctx context.Context, handler EventHandler) error
	Unsubscribe() error
}

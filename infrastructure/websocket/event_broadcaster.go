package websocket

import (
	"context"
	"sync"

	"taskboard/domain/ports"
	"taskboard/pkg/logger"
)

func ProjectRoom(projectID string) string { return "project:" + projectID }
func TaskRoom(taskID string) string       { return "task:" + taskID }

// EventBroadcaster forwards domain events to the rooms of the records they touch.
type EventBroadcaster struct {
	subscriber ports.EventSubscriberPort
	manager    *Manager
	running    bool
	runningMu  sync.Mutex
	cancelCtx  context.CancelFunc
}

func NewEventBroadcaster(subscriber ports.EventSubscriberPort, manager *Manager) *EventBroadcaster {
	return &EventBroadcaster{subscriber: subscriber, manager: manager}
}

func (b *EventBroadcaster) Start() error {
	b.runningMu.Lock()
	defer b.runningMu.Unlock()
	if b.running {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := b.subscriber.Subscribe(ctx, b.HandleEvent); err != nil {
		cancel()
		return err
	}
	b.cancelCtx = cancel
	b.running = true

	logger.Info("Event broadcaster started")
	return nil
}

// HandleEvent sends the event to its project room and task room.
func (b *EventBroadcaster) HandleEvent(event *ports.DomainEvent) {
	if event == nil || event.Type == "" {
		logger.Warn("Invalid domain event received")
		return
	}

	if event.ProjectID != "" {
		b.manager.BroadcastToRoom(ProjectRoom(event.ProjectID), string(event.Type), event)
	}
	if event.TaskID != "" {
		b.manager.BroadcastToRoom(TaskRoom(event.TaskID), string(event.Type), event)
	}

	logger.Debug("Domain event broadcasted",
		"type", event.Type,
		"task_id", event.TaskID,
		"project_id", event.ProjectID,
	)
}

func (b *EventBroadcaster) Stop() {
	b.runningMu.Lock()
	defer b.runningMu.Unlock()
	if !b.running {
		return
	}
	b.running = false

	if b.cancelCtx != nil {
		b.cancelCtx()
	}
	if err := b.subscriber.Unsubscribe(); err != nil {
		logger.Warn("Failed to unsubscribe domain events", "error", err)
	}
	logger.Info("Event broadcaster stopped")
}

func (b *EventBroadcaster) IsRunning() bool {
	b.runningMu.Lock()
	defer b.runningMu.Unlock()
	return b.running
}

package messaging

import (
	"context"
	"sync"

	"taskboard/domain/ports"
	"taskboard/pkg/logger"
)

// LocalBus delivers domain events to in-process subscribers. It stands in
// for NATS when the API runs as a single instance.
type LocalBus struct {
	mu       sync.RWMutex
	handlers []ports.EventHandler
}

func NewLocalBus() *LocalBus {
	return &LocalBus{}
}

func (b *LocalBus) Publish(ctx context.Context, event *ports.DomainEvent) error {
	b.mu.RLock()
	handlers := append([]ports.EventHandler(nil), b.handlers...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.dispatch(ctx, handler, event)
	}
	return nil
}

func (b *LocalBus) dispatch(ctx context.Context, handler ports.EventHandler, event *ports.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Domain event handler panicked", "type", event.Type, "error", r)
		}
	}()
	copied := *event
	handler(&copied)
}

func (b *LocalBus) Subscribe(ctx context.Context, handler ports.EventHandler) error {
	b.mu.Lock()
	b.handlers = append(b.handlers, handler)
	b.mu.Unlock()
	return nil
}

func (b *LocalBus) Unsubscribe() error {
	b.mu.Lock()
	b.handlers = nil
	b.mu.Unlock()
	return nil
}

var (
	_ ports.EventPublisherPort  = (*LocalBus)(nil)
	_ ports.EventSubscriberPort = (*LocalBus)(nil)
)

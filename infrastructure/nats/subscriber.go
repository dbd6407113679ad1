package nats

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"

	"taskboard/domain/ports"
	"taskboard/pkg/logger"
)

// Subscriber receives domain events over core NATS, so every API instance
// sees every event regardless of which instance published it.
type Subscriber struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	mu      sync.Mutex
	running bool
}

func NewSubscriber(conn *nats.Conn) ports.EventSubscriberPort {
	return &Subscriber{conn: conn}
}

func (s *Subscriber) Subscribe(ctx context.Context, handler ports.EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	sub, err := s.conn.Subscribe(SubjectAll, func(msg *nats.Msg) {
		s.handleMessage(msg, handler)
	})
	if err != nil {
		return err
	}
	s.sub = sub
	s.running = true

	go func() {
		<-ctx.Done()
		_ = s.Unsubscribe()
	}()

	logger.Info("NATS subscriber started", "subject", SubjectAll)
	return nil
}

func (s *Subscriber) handleMessage(msg *nats.Msg, handler ports.EventHandler) {
	var event ports.DomainEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to parse domain event", "subject", msg.Subject, "error", err)
		return
	}
	if event.Type == "" {
		if t, ok := EventTypeFromSubject(msg.Subject); ok {
			event.Type = t
		}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Domain event handler panicked", "subject", msg.Subject, "error", r)
		}
	}()
	handler(&event)
}

func (s *Subscriber) Unsubscribe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", "error", err)
			return err
		}
	}
	logger.Info("NATS subscriber stopped")
	return nil
}

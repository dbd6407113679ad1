package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"taskboard/domain/ports"
	"taskboard/pkg/logger"
)

// EventPublisher publishes domain events to the JetStream events stream.
type EventPublisher struct {
	client *Client
}

func NewEventPublisher(client *Client) ports.EventPublisherPort {
	return &EventPublisher{client: client}
}

func (p *EventPublisher) Publish(ctx context.Context, event *ports.DomainEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := SubjectFor(event.Type)
	ack, err := p.client.js.Publish(ctx, subject, data)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to publish domain event", "subject", subject, "error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	logger.DebugContext(ctx, "Domain event published",
		"subject", subject,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)
	return nil
}

package messaging

import (
	"context"
	"testing"

	"taskboard/domain/ports"
)

func TestLocalBus_DeliversToSubscribers(t *testing.T) {
	bus := NewLocalBus()
	var got []*ports.DomainEvent
	_ = bus.Subscribe(context.Background(), func(e *ports.DomainEvent) { got = append(got, e) })

	event := &ports.DomainEvent{Type: ports.EventTaskSaved, TaskID: "t1"}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(got) != 1 || got[0].TaskID != "t1" {
		t.Fatalf("Expected one delivered event, got %v", got)
	}
	if got[0] == event {
		t.Errorf("Expected subscribers to receive a copy")
	}
}

func TestLocalBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewLocalBus()
	delivered := false
	_ = bus.Subscribe(context.Background(), func(*ports.DomainEvent) { panic("boom") })
	_ = bus.Subscribe(context.Background(), func(*ports.DomainEvent) { delivered = true })

	_ = bus.Publish(context.Background(), &ports.DomainEvent{Type: ports.EventProjectSaved})
	if !delivered {
		t.Errorf("Expected second handler to run")
	}
}

func TestLocalBus_Unsubscribe(t *testing.T) {
	bus := NewLocalBus()
	calls := 0
	_ = bus.Subscribe(context.Background(), func(*ports.DomainEvent) { calls++ })
	_ = bus.Unsubscribe()

	_ = bus.Publish(context.Background(), &ports.DomainEvent{Type: ports.EventTaskDeleted})
	if calls != 0 {
		t.Errorf("Expected no deliveries after unsubscribe, got %d", calls)
	}
}

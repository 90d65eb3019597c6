package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := "agg-123"
	ownerID := "user-456"

	before := time.Now().UTC()
	event := NewBaseEvent("ApplicationScored", aggregateID, "CreditApplication", ownerID)
	after := time.Now().UTC()

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}

	if event.EventType() != "ApplicationScored" {
		t.Errorf("expected event type %q, got %q", "ApplicationScored", event.EventType())
	}

	if event.AggregateID() != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, event.AggregateID())
	}

	if event.AggregateType() != "CreditApplication" {
		t.Errorf("expected aggregate type %q, got %q", "CreditApplication", event.AggregateType())
	}

	if event.OwnerID() != ownerID {
		t.Errorf("expected owner ID %q, got %q", ownerID, event.OwnerID())
	}

	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, event.OccurredAt())
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestNewBaseEventUniqueIDs(t *testing.T) {
	e1 := NewBaseEvent("Event1", "agg", "Aggregate", "")
	e2 := NewBaseEvent("Event1", "agg", "Aggregate", "")

	if e1.EventID() == e2.EventID() {
		t.Error("expected distinct event IDs")
	}
}

func TestBaseEventMarshalsEnvelope(t *testing.T) {
	event := NewBaseEvent("Event1", "agg-1", "Aggregate", "user-1")

	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("expected valid JSON payload, got error: %v", err)
	}

	for _, key := range []string{"event_id", "event_type", "aggregate_id", "aggregate_type", "owner_id", "occurred_at"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("expected key %q in payload", key)
		}
	}
}

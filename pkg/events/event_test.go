package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewBaseEvent(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	event := NewBaseEvent("loan.schedule.regenerated", "loan-1", "Loan", "owner-1", at)

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}
	if event.EventType() != "loan.schedule.regenerated" {
		t.Errorf("expected event type %q, got %q", "loan.schedule.regenerated", event.EventType())
	}
	if event.AggregateID() != "loan-1" {
		t.Errorf("expected aggregate ID %q, got %q", "loan-1", event.AggregateID())
	}
	if event.AggregateType() != "Loan" {
		t.Errorf("expected aggregate type %q, got %q", "Loan", event.AggregateType())
	}
	if event.OwnerID() != "owner-1" {
		t.Errorf("expected owner ID %q, got %q", "owner-1", event.OwnerID())
	}
	if !event.OccurredAt().Equal(at) || event.OccurredAt().Location() != time.UTC {
		t.Errorf("expected occurredAt %v in UTC, got %v", at, event.OccurredAt())
	}
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	a := NewBaseEvent("x", "agg", "Loan", "", time.Now())
	b := NewBaseEvent("x", "agg", "Loan", "", time.Now())
	if a.EventID() == b.EventID() {
		t.Error("expected distinct event IDs")
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestBaseEventJSONEnvelope(t *testing.T) {
	event := NewBaseEvent("loan.payment.applied", "loan-9", "Loan", "owner-9", time.Now())

	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"event_id", "event_type", "aggregate_id", "aggregate_type", "owner_id", "occurred_at"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("expected key %q in payload %s", key, payload)
		}
	}
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent records something that happened in the domain. Events are
// immutable after construction and keyed by the aggregate that raised them.
type DomainEvent struct {
	EventID     string         `json:"event_id"`
	AggregateID string         `json:"aggregate_id"`
	EventType   string         `json:"event_type"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Data        map[string]any `json:"data,omitempty"`
}

// NewDomainEvent stamps a fresh event with a generated ID. The data map is
// copied so later caller mutations cannot reach the event.
func NewDomainEvent(aggregateID, eventType string, occurredAt time.Time, data map[string]any) DomainEvent {
	var copied map[string]any
	if data != nil {
		copied = make(map[string]any, len(data))
		for k, v := range data {
			copied[k] = v
		}
	}
	return DomainEvent{
		EventID:     uuid.NewString(),
		AggregateID: aggregateID,
		EventType:   eventType,
		OccurredAt:  occurredAt,
		Data:        copied,
	}
}

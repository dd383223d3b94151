// Package domain holds the building blocks shared by all bounded contexts.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event represents something that happened in the domain. Events are
// published on the bus after the aggregate change is persisted.
type Event interface {
	EventID() uuid.UUID
	AggregateID() uuid.UUID
	RoutingKey() string
	OccurredAt() time.Time
}

// BaseEvent provides common event fields. Fields are exported so concrete
// events serialize directly onto the bus.
type BaseEvent struct {
	ID          uuid.UUID `json:"event_id"`
	Aggregate   uuid.UUID `json:"aggregate_id"`
	Key         string    `json:"routing_key"`
	OccurredAtT time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a base event for an aggregate.
func NewBaseEvent(aggregateID uuid.UUID, routingKey string) BaseEvent {
	return BaseEvent{
		ID:          uuid.New(),
		Aggregate:   aggregateID,
		Key:         routingKey,
		OccurredAtT: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID     { return e.ID }
func (e BaseEvent) AggregateID() uuid.UUID { return e.Aggregate }
func (e BaseEvent) RoutingKey() string     { return e.Key }
func (e BaseEvent) OccurredAt() time.Time  { return e.OccurredAtT }

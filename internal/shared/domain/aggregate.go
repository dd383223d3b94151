package domain

import (
	"time"

	"github.com/google/uuid"
)

// BaseAggregateRoot provides identity, timestamps and event collection for
// aggregates.
type BaseAggregateRoot struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
	events    []Event
}

// NewBaseAggregateRoot creates an aggregate root with a fresh identity.
func NewBaseAggregateRoot() BaseAggregateRoot {
	now := time.Now().UTC()
	return BaseAggregateRoot{
		id:        uuid.New(),
		createdAt: now,
		updatedAt: now,
	}
}

// RehydrateBaseAggregateRoot recreates an aggregate root from persisted state.
func RehydrateBaseAggregateRoot(id uuid.UUID, createdAt, updatedAt time.Time) BaseAggregateRoot {
	return BaseAggregateRoot{
		id:        id,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (a *BaseAggregateRoot) ID() uuid.UUID        { return a.id }
func (a *BaseAggregateRoot) CreatedAt() time.Time { return a.createdAt }
func (a *BaseAggregateRoot) UpdatedAt() time.Time { return a.updatedAt }

// Touch updates the modification timestamp.
func (a *BaseAggregateRoot) Touch() {
	a.updatedAt = time.Now().UTC()
}

// Events returns the uncommitted domain events.
func (a *BaseAggregateRoot) Events() []Event {
	return a.events
}

// ClearEvents drops the uncommitted domain events after publishing.
func (a *BaseAggregateRoot) ClearEvents() {
	a.events = nil
}

// Record appends a domain event for publication after persistence.
func (a *BaseAggregateRoot) Record(event Event) {
	a.events = append(a.events, event)
}

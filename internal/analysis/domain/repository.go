package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventRepository is the append-only task event log.
type EventRepository interface {
	// Append stores a validated event.
	Append(ctx context.Context, event *TaskEvent) error
	// FindByUserAndRange returns events whose creation timestamp falls in
	// [start, end], ordered by creation time ascending.
	FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]TaskEvent, error)
	// CountByUser returns the number of logged events for a user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// ReportCache holds the most recent report per user and range so that
// recommend can project it without recomputation. Implementations must treat
// misses and transport failures as soft: analysis proceeds without the cache.
type ReportCache interface {
	Get(ctx context.Context, userID uuid.UUID, rng NamedRange) (*ProductivityReport, bool)
	Set(ctx context.Context, userID uuid.UUID, rng NamedRange, report *ProductivityReport)
}

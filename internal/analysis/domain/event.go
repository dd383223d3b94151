// Package domain contains the domain model for the analysis bounded context.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventStatus is the lifecycle state a task was observed in.
type EventStatus string

const (
	EventStatusPending    EventStatus = "pending"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

// ParseEventStatus creates an EventStatus from a string.
func ParseEventStatus(s string) (EventStatus, bool) {
	switch EventStatus(strings.ToLower(s)) {
	case EventStatusPending, EventStatusInProgress, EventStatusCompleted, EventStatusCancelled:
		return EventStatus(strings.ToLower(s)), true
	}
	return "", false
}

// EventPriority is the declared priority of the observed task.
type EventPriority string

const (
	EventPriorityLow      EventPriority = "low"
	EventPriorityMedium   EventPriority = "medium"
	EventPriorityHigh     EventPriority = "high"
	EventPriorityCritical EventPriority = "critical"
)

// ParseEventPriority creates an EventPriority from a string.
func ParseEventPriority(s string) (EventPriority, bool) {
	switch EventPriority(strings.ToLower(s)) {
	case EventPriorityLow, EventPriorityMedium, EventPriorityHigh, EventPriorityCritical:
		return EventPriority(strings.ToLower(s)), true
	}
	return "", false
}

// TaskEvent is one immutable task lifecycle observation. The analyzer only
// reads snapshots; the record is owned by whichever collaborator logged it.
type TaskEvent struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	TaskID           string
	Status           EventStatus
	Priority         EventPriority
	EstimatedMinutes int
	ActualMinutes    int // 0 when unknown
	Tags             []string
	CreatedAt        time.Time
	CompletedAt      *time.Time // present iff completed
	DueDate          *time.Time
	RecordedAt       time.Time
}

// IsCompleted reports whether the event observed a completed task.
func (e TaskEvent) IsCompleted() bool {
	return e.Status == EventStatusCompleted && e.CompletedAt != nil
}

// Validate checks the record invariants. Malformed events are rejected with
// InvalidEventError rather than silently skipped.
func (e TaskEvent) Validate() error {
	if e.TaskID == "" {
		return &InvalidEventError{TaskID: e.TaskID, Reason: "task identifier is empty"}
	}
	if _, ok := ParseEventStatus(string(e.Status)); !ok {
		return &InvalidEventError{TaskID: e.TaskID, Reason: "unknown status " + string(e.Status)}
	}
	if _, ok := ParseEventPriority(string(e.Priority)); !ok {
		return &InvalidEventError{TaskID: e.TaskID, Reason: "unknown priority " + string(e.Priority)}
	}
	if e.EstimatedMinutes <= 0 {
		return &InvalidEventError{TaskID: e.TaskID, Reason: "estimated duration must be positive"}
	}
	if e.CreatedAt.IsZero() {
		return &InvalidEventError{TaskID: e.TaskID, Reason: "creation timestamp is missing"}
	}
	if e.CompletedAt != nil && e.CompletedAt.Before(e.CreatedAt) {
		return &InvalidEventError{TaskID: e.TaskID, Reason: "completion timestamp precedes creation"}
	}
	if e.Status == EventStatusCompleted && e.CompletedAt == nil {
		return &InvalidEventError{TaskID: e.TaskID, Reason: "completed status without completion timestamp"}
	}
	return nil
}

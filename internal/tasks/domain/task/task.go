// Package task contains the task aggregate and its lifecycle rules.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/cadencehq/cadence/internal/shared/domain"
	"github.com/cadencehq/cadence/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle          = errors.New("task title cannot be empty")
	ErrTaskAlreadyComplete = errors.New("task is already completed")
	ErrTaskCancelled       = errors.New("task is cancelled")
	ErrTaskNotOwned        = errors.New("task belongs to another user")
)

// Status represents the task lifecycle state.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusPending:    "pending",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusCancelled:  "cancelled",
}

var statusValues = map[string]Status{
	"pending":     StatusPending,
	"in_progress": StatusInProgress,
	"completed":   StatusCompleted,
	"cancelled":   StatusCancelled,
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStatus creates a Status from a string.
func ParseStatus(s string) (Status, error) {
	status, ok := statusValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return StatusPending, errors.New("invalid status value")
	}
	return status, nil
}

// Task represents a unit of work to be done.
type Task struct {
	domain.BaseAggregateRoot
	userID        uuid.UUID
	title         string
	description   string
	status        Status
	priority      value_objects.Priority
	estimate      value_objects.Duration
	tags          []string
	dueDate       *time.Time
	startedAt     *time.Time
	completedAt   *time.Time
	actualMinutes int
}

// NewTask creates a pending task with the given title and estimate.
func NewTask(userID uuid.UUID, title string, priority value_objects.Priority, estimate value_objects.Duration) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		status:            StatusPending,
		priority:          priority,
		estimate:          estimate,
	}

	t.Record(NewTaskCreated(t.ID(), userID, t.title, t.priority.String()))

	return t, nil
}

// Rehydrate recreates a task from persisted state without emitting events.
func Rehydrate(
	id, userID uuid.UUID,
	title, description string,
	status Status,
	priority value_objects.Priority,
	estimate value_objects.Duration,
	tags []string,
	dueDate, startedAt, completedAt *time.Time,
	actualMinutes int,
	createdAt, updatedAt time.Time,
) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(id, createdAt, updatedAt),
		userID:            userID,
		title:             title,
		description:       description,
		status:            status,
		priority:          priority,
		estimate:          estimate,
		tags:              tags,
		dueDate:           dueDate,
		startedAt:         startedAt,
		completedAt:       completedAt,
		actualMinutes:     actualMinutes,
	}
}

func (t *Task) UserID() uuid.UUID                { return t.userID }
func (t *Task) Title() string                    { return t.title }
func (t *Task) Description() string              { return t.description }
func (t *Task) Status() Status                   { return t.status }
func (t *Task) Priority() value_objects.Priority { return t.priority }
func (t *Task) Estimate() value_objects.Duration { return t.estimate }
func (t *Task) Tags() []string                   { return t.tags }
func (t *Task) DueDate() *time.Time              { return t.dueDate }
func (t *Task) StartedAt() *time.Time            { return t.startedAt }
func (t *Task) CompletedAt() *time.Time          { return t.completedAt }
func (t *Task) ActualMinutes() int               { return t.actualMinutes }
func (t *Task) IsCompleted() bool                { return t.status == StatusCompleted }
func (t *Task) IsCancelled() bool                { return t.status == StatusCancelled }

// IsOverdue reports whether the task has a due date in the past and is
// still open.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.dueDate == nil || t.IsCompleted() || t.IsCancelled() {
		return false
	}
	return t.dueDate.Before(now)
}

// SetTitle updates the task title.
func (t *Task) SetTitle(title string) error {
	if t.IsCancelled() {
		return ErrTaskCancelled
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	t.title = title
	t.Touch()
	return nil
}

// SetDescription updates the task description.
func (t *Task) SetDescription(description string) error {
	if t.IsCancelled() {
		return ErrTaskCancelled
	}
	t.description = strings.TrimSpace(description)
	t.Touch()
	return nil
}

// SetPriority updates the task priority.
func (t *Task) SetPriority(priority value_objects.Priority) error {
	if t.IsCancelled() {
		return ErrTaskCancelled
	}
	t.priority = priority
	t.Touch()
	return nil
}

// SetEstimate updates the estimated duration.
func (t *Task) SetEstimate(estimate value_objects.Duration) error {
	if t.IsCancelled() {
		return ErrTaskCancelled
	}
	t.estimate = estimate
	t.Touch()
	return nil
}

// SetDueDate updates the due date. A nil due date clears it.
func (t *Task) SetDueDate(dueDate *time.Time) error {
	if t.IsCancelled() {
		return ErrTaskCancelled
	}
	t.dueDate = dueDate
	t.Touch()
	return nil
}

// SetTags replaces the task tags.
func (t *Task) SetTags(tags []string) error {
	if t.IsCancelled() {
		return ErrTaskCancelled
	}
	t.tags = tags
	t.Touch()
	return nil
}

// Start marks the task as in progress.
func (t *Task) Start() error {
	if t.IsCompleted() {
		return ErrTaskAlreadyComplete
	}
	if t.IsCancelled() {
		return ErrTaskCancelled
	}
	if t.status == StatusInProgress {
		return nil // Idempotent
	}

	now := time.Now().UTC()
	t.status = StatusInProgress
	t.startedAt = &now
	t.Touch()
	t.Record(NewTaskStarted(t.ID(), t.userID))
	return nil
}

// Complete marks the task as completed and records the actual time spent.
// Zero actualMinutes falls back to the elapsed time since Start, then to
// the estimate.
func (t *Task) Complete(actualMinutes int) error {
	if t.IsCompleted() {
		return ErrTaskAlreadyComplete
	}
	if t.IsCancelled() {
		return ErrTaskCancelled
	}

	now := time.Now().UTC()
	if actualMinutes <= 0 {
		if t.startedAt != nil {
			actualMinutes = int(now.Sub(*t.startedAt).Minutes())
		}
		if actualMinutes <= 0 {
			actualMinutes = t.estimate.Minutes()
		}
	}

	t.status = StatusCompleted
	t.completedAt = &now
	t.actualMinutes = actualMinutes
	t.Touch()

	t.Record(NewTaskCompleted(t))

	return nil
}

// Cancel marks the task as cancelled.
func (t *Task) Cancel() error {
	if t.IsCompleted() {
		return ErrTaskAlreadyComplete
	}
	if t.IsCancelled() {
		return nil // Idempotent
	}

	t.status = StatusCancelled
	t.Touch()
	t.Record(NewTaskCancelled(t.ID(), t.userID))
	return nil
}

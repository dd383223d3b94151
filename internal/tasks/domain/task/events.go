package task

import (
	"time"

	"github.com/cadencehq/cadence/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	RoutingKeyCreated   = "cadence.task.created"
	RoutingKeyStarted   = "cadence.task.started"
	RoutingKeyCompleted = "cadence.task.completed"
	RoutingKeyCancelled = "cadence.task.cancelled"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	UserID   uuid.UUID `json:"user_id"`
	Title    string    `json:"title"`
	Priority string    `json:"priority"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID, userID uuid.UUID, title, priority string) TaskCreated {
	return TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, RoutingKeyCreated),
		UserID:    userID,
		Title:     title,
		Priority:  priority,
	}
}

// TaskStarted is emitted when a task moves to in_progress.
type TaskStarted struct {
	domain.BaseEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewTaskStarted creates a TaskStarted event.
func NewTaskStarted(taskID, userID uuid.UUID) TaskStarted {
	return TaskStarted{
		BaseEvent: domain.NewBaseEvent(taskID, RoutingKeyStarted),
		UserID:    userID,
	}
}

// TaskCompleted is emitted when a task is completed. It carries the full
// snapshot the analysis event log needs, so subscribers never have to read
// the task store.
type TaskCompleted struct {
	domain.BaseEvent
	UserID           uuid.UUID  `json:"user_id"`
	TaskID           string     `json:"task_id"`
	Priority         string     `json:"priority"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	ActualMinutes    int        `json:"actual_minutes"`
	Tags             []string   `json:"tags,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      time.Time  `json:"completed_at"`
	DueDate          *time.Time `json:"due_date,omitempty"`
}

// NewTaskCompleted creates a TaskCompleted event from the completed task.
func NewTaskCompleted(t *Task) TaskCompleted {
	return TaskCompleted{
		BaseEvent:        domain.NewBaseEvent(t.ID(), RoutingKeyCompleted),
		UserID:           t.UserID(),
		TaskID:           t.ID().String(),
		Priority:         t.Priority().String(),
		EstimatedMinutes: t.Estimate().Minutes(),
		ActualMinutes:    t.ActualMinutes(),
		Tags:             t.Tags(),
		CreatedAt:        t.CreatedAt(),
		CompletedAt:      *t.CompletedAt(),
		DueDate:          t.DueDate(),
	}
}

// TaskCancelled is emitted when a task is cancelled.
type TaskCancelled struct {
	domain.BaseEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewTaskCancelled creates a TaskCancelled event.
func NewTaskCancelled(taskID, userID uuid.UUID) TaskCancelled {
	return TaskCancelled{
		BaseEvent: domain.NewBaseEvent(taskID, RoutingKeyCancelled),
		UserID:    userID,
	}
}

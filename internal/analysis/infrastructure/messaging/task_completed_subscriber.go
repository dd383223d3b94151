// Package messaging connects the analysis event log to the event bus.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/application/commands"
	"github.com/google/uuid"
)

// taskCompletedMessage is the wire shape of cadence.task.completed. It is
// decoded here rather than imported so the analysis context stays decoupled
// from the tasks context.
type taskCompletedMessage struct {
	UserID           uuid.UUID  `json:"user_id"`
	TaskID           string     `json:"task_id"`
	Priority         string     `json:"priority"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	ActualMinutes    int        `json:"actual_minutes"`
	Tags             []string   `json:"tags"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      time.Time  `json:"completed_at"`
	DueDate          *time.Time `json:"due_date"`
}

// TaskCompletedSubscriber appends completed tasks to the analysis event log.
type TaskCompletedSubscriber struct {
	recorder *commands.RecordEventHandler
	logger   *slog.Logger
}

// NewTaskCompletedSubscriber creates the subscriber.
func NewTaskCompletedSubscriber(recorder *commands.RecordEventHandler, logger *slog.Logger) *TaskCompletedSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskCompletedSubscriber{recorder: recorder, logger: logger}
}

// RoutingKeys declares the events this subscriber handles.
func (s *TaskCompletedSubscriber) RoutingKeys() []string {
	return []string{"cadence.task.completed"}
}

// Handle decodes the completion message and records a task event.
func (s *TaskCompletedSubscriber) Handle(ctx context.Context, routingKey string, payload []byte) error {
	var msg taskCompletedMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		// A payload that never parses would requeue forever; drop it.
		s.logger.Error("malformed task completion payload",
			"routing_key", routingKey,
			"error", err,
		)
		return nil
	}

	completedAt := msg.CompletedAt
	_, err := s.recorder.Handle(ctx, commands.RecordEventCommand{
		UserID:           msg.UserID,
		TaskID:           msg.TaskID,
		Status:           "completed",
		Priority:         msg.Priority,
		EstimatedMinutes: msg.EstimatedMinutes,
		ActualMinutes:    msg.ActualMinutes,
		Tags:             msg.Tags,
		CreatedAt:        msg.CreatedAt,
		CompletedAt:      &completedAt,
		DueDate:          msg.DueDate,
	})
	if err != nil {
		return fmt.Errorf("failed to record completion of task %s: %w", msg.TaskID, err)
	}

	return nil
}

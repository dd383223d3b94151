package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/cadencehq/cadence/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

// UpdateTaskCommand carries the fields to change. Nil pointers leave the
// field untouched.
type UpdateTaskCommand struct {
	TaskID           uuid.UUID
	UserID           uuid.UUID
	Title            *string
	Description      *string
	Priority         *string
	EstimatedMinutes *int
	Tags             []string
	DueDate          *time.Time
	ClearDueDate     bool
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	tasks  task.Repository
	logger *slog.Logger
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(tasks task.Repository, logger *slog.Logger) *UpdateTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateTaskHandler{tasks: tasks, logger: logger}
}

// Handle executes the UpdateTaskCommand.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) (*task.Task, error) {
	t, err := loadOwnedTask(ctx, h.tasks, cmd.TaskID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Title != nil {
		if err := t.SetTitle(*cmd.Title); err != nil {
			return nil, err
		}
	}
	if cmd.Description != nil {
		if err := t.SetDescription(*cmd.Description); err != nil {
			return nil, err
		}
	}
	if cmd.Priority != nil {
		priority, err := value_objects.ParsePriority(*cmd.Priority)
		if err != nil {
			return nil, err
		}
		if err := t.SetPriority(priority); err != nil {
			return nil, err
		}
	}
	if cmd.EstimatedMinutes != nil {
		estimate, err := value_objects.DurationFromMinutes(*cmd.EstimatedMinutes)
		if err != nil {
			return nil, err
		}
		if err := t.SetEstimate(estimate); err != nil {
			return nil, err
		}
	}
	if cmd.Tags != nil {
		if err := t.SetTags(cmd.Tags); err != nil {
			return nil, err
		}
	}
	if cmd.ClearDueDate {
		if err := t.SetDueDate(nil); err != nil {
			return nil, err
		}
	} else if cmd.DueDate != nil {
		if err := t.SetDueDate(cmd.DueDate); err != nil {
			return nil, err
		}
	}

	if err := h.tasks.Save(ctx, t); err != nil {
		return nil, err
	}

	h.logger.Debug("task updated", "task_id", t.ID().String())
	return t, nil
}

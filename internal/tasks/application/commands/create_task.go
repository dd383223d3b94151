// Package commands contains the write-side handlers of the tasks context.
package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/cadencehq/cadence/internal/shared/infrastructure/eventbus"
	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/cadencehq/cadence/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	UserID           uuid.UUID
	Title            string
	Description      string
	Priority         string
	EstimatedMinutes int
	Tags             []string
	DueDate          *time.Time
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	tasks     task.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(tasks task.Repository, publisher eventbus.Publisher, logger *slog.Logger) *CreateTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateTaskHandler{tasks: tasks, publisher: publisher, logger: logger}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*task.Task, error) {
	priority, err := value_objects.ParsePriority(cmd.Priority)
	if err != nil {
		return nil, err
	}

	estimate, err := value_objects.DurationFromMinutes(cmd.EstimatedMinutes)
	if err != nil {
		return nil, err
	}

	t, err := task.NewTask(cmd.UserID, cmd.Title, priority, estimate)
	if err != nil {
		return nil, err
	}
	if cmd.Description != "" {
		if err := t.SetDescription(cmd.Description); err != nil {
			return nil, err
		}
	}
	if len(cmd.Tags) > 0 {
		if err := t.SetTags(cmd.Tags); err != nil {
			return nil, err
		}
	}
	if cmd.DueDate != nil {
		if err := t.SetDueDate(cmd.DueDate); err != nil {
			return nil, err
		}
	}

	if err := h.tasks.Save(ctx, t); err != nil {
		return nil, err
	}

	publishAndClear(ctx, h.publisher, h.logger, t)

	h.logger.Debug("task created",
		"task_id", t.ID().String(),
		"user_id", cmd.UserID.String(),
	)

	return t, nil
}

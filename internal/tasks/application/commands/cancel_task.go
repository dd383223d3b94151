package commands

import (
	"context"
	"log/slog"

	"github.com/cadencehq/cadence/internal/shared/infrastructure/eventbus"
	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// CancelTaskCommand cancels a task without deleting its record.
type CancelTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// CancelTaskHandler handles the CancelTaskCommand.
type CancelTaskHandler struct {
	tasks     task.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewCancelTaskHandler creates a new CancelTaskHandler.
func NewCancelTaskHandler(tasks task.Repository, publisher eventbus.Publisher, logger *slog.Logger) *CancelTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CancelTaskHandler{tasks: tasks, publisher: publisher, logger: logger}
}

// Handle executes the CancelTaskCommand.
func (h *CancelTaskHandler) Handle(ctx context.Context, cmd CancelTaskCommand) error {
	t, err := loadOwnedTask(ctx, h.tasks, cmd.TaskID, cmd.UserID)
	if err != nil {
		return err
	}

	if err := t.Cancel(); err != nil {
		return err
	}

	if err := h.tasks.Save(ctx, t); err != nil {
		return err
	}

	publishAndClear(ctx, h.publisher, h.logger, t)
	h.logger.Debug("task cancelled", "task_id", t.ID().String())
	return nil
}

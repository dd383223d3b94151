package commands

import (
	"context"
	"log/slog"

	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// DeleteTaskCommand removes a task permanently.
type DeleteTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	tasks  task.Repository
	logger *slog.Logger
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(tasks task.Repository, logger *slog.Logger) *DeleteTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteTaskHandler{tasks: tasks, logger: logger}
}

// Handle executes the DeleteTaskCommand.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	if _, err := loadOwnedTask(ctx, h.tasks, cmd.TaskID, cmd.UserID); err != nil {
		return err
	}

	if err := h.tasks.Delete(ctx, cmd.TaskID); err != nil {
		return err
	}

	h.logger.Debug("task deleted", "task_id", cmd.TaskID.String())
	return nil
}

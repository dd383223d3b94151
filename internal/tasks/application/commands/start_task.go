package commands

import (
	"context"
	"log/slog"

	"github.com/cadencehq/cadence/internal/shared/infrastructure/eventbus"
	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// StartTaskCommand moves a task to in_progress.
type StartTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// StartTaskHandler handles the StartTaskCommand.
type StartTaskHandler struct {
	tasks     task.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewStartTaskHandler creates a new StartTaskHandler.
func NewStartTaskHandler(tasks task.Repository, publisher eventbus.Publisher, logger *slog.Logger) *StartTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StartTaskHandler{tasks: tasks, publisher: publisher, logger: logger}
}

// Handle executes the StartTaskCommand.
func (h *StartTaskHandler) Handle(ctx context.Context, cmd StartTaskCommand) error {
	t, err := loadOwnedTask(ctx, h.tasks, cmd.TaskID, cmd.UserID)
	if err != nil {
		return err
	}

	if err := t.Start(); err != nil {
		return err
	}

	if err := h.tasks.Save(ctx, t); err != nil {
		return err
	}

	publishAndClear(ctx, h.publisher, h.logger, t)
	h.logger.Debug("task started", "task_id", t.ID().String())
	return nil
}

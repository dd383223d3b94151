package commands

import (
	"context"
	"log/slog"

	"github.com/cadencehq/cadence/internal/shared/infrastructure/eventbus"
	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// CompleteTaskCommand finishes a task. ActualMinutes of zero lets the
// aggregate derive the time spent.
type CompleteTaskCommand struct {
	TaskID        uuid.UUID
	UserID        uuid.UUID
	ActualMinutes int
}

// CompleteTaskHandler handles the CompleteTaskCommand. Completion is the
// moment a task enters the analysis event log, via the published
// cadence.task.completed event.
type CompleteTaskHandler struct {
	tasks     task.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(tasks task.Repository, publisher eventbus.Publisher, logger *slog.Logger) *CompleteTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompleteTaskHandler{tasks: tasks, publisher: publisher, logger: logger}
}

// Handle executes the CompleteTaskCommand.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) (*task.Task, error) {
	t, err := loadOwnedTask(ctx, h.tasks, cmd.TaskID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := t.Complete(cmd.ActualMinutes); err != nil {
		return nil, err
	}

	if err := h.tasks.Save(ctx, t); err != nil {
		return nil, err
	}

	publishAndClear(ctx, h.publisher, h.logger, t)
	h.logger.Debug("task completed",
		"task_id", t.ID().String(),
		"actual_minutes", t.ActualMinutes(),
	)
	return t, nil
}

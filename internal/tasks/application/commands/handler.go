package commands

import (
	"context"
	"log/slog"

	"github.com/cadencehq/cadence/internal/shared/infrastructure/eventbus"
	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// loadOwnedTask fetches a task and verifies it belongs to the caller.
func loadOwnedTask(ctx context.Context, tasks task.Repository, taskID, userID uuid.UUID) (*task.Task, error) {
	t, err := tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID() != userID {
		return nil, task.ErrTaskNotOwned
	}
	return t, nil
}

// publishAndClear publishes the task's pending events and drops them.
// Publish failures are logged: the state change is already persisted.
func publishAndClear(ctx context.Context, publisher eventbus.Publisher, logger *slog.Logger, t *task.Task) {
	if err := eventbus.PublishEvents(ctx, publisher, t.Events()); err != nil {
		logger.Warn("failed to publish task events",
			"task_id", t.ID().String(),
			"error", err,
		)
	}
	t.ClearEvents()
}

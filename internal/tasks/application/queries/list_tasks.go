// Package queries contains the read-side handlers of the tasks context.
package queries

import (
	"context"
	"log/slog"

	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// ListTasksQuery lists a user's tasks with optional filters.
type ListTasksQuery struct {
	UserID  uuid.UUID
	Status  string
	Tag     string
	Overdue bool
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	tasks  task.Repository
	logger *slog.Logger
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(tasks task.Repository, logger *slog.Logger) *ListTasksHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListTasksHandler{tasks: tasks, logger: logger}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, q ListTasksQuery) ([]*task.Task, error) {
	filter := task.Filter{Tag: q.Tag, Overdue: q.Overdue}
	if q.Status != "" {
		status, err := task.ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	return h.tasks.FindByUserID(ctx, q.UserID, filter)
}

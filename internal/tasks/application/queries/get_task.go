package queries

import (
	"context"

	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// GetTaskQuery fetches one task by id.
type GetTaskQuery struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	tasks task.Repository
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(tasks task.Repository) *GetTaskHandler {
	return &GetTaskHandler{tasks: tasks}
}

// Handle executes the GetTaskQuery.
func (h *GetTaskHandler) Handle(ctx context.Context, q GetTaskQuery) (*task.Task, error) {
	t, err := h.tasks.FindByID(ctx, q.TaskID)
	if err != nil {
		return nil, err
	}
	if t.UserID() != q.UserID {
		return nil, task.ErrTaskNotOwned
	}
	return t, nil
}

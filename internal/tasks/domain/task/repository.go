package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task id does not exist.
var ErrTaskNotFound = errors.New("task not found")

// Filter narrows a task listing. Zero values match everything.
type Filter struct {
	Status  *Status
	Tag     string
	DueOnly bool
	Overdue bool
}

// Repository defines the interface for task persistence.
type Repository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, filter Filter) ([]*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

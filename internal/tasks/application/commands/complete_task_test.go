package commands

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/cadencehq/cadence/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoredTask(t *testing.T, userID uuid.UUID) *task.Task {
	t.Helper()
	tk, err := task.NewTask(userID, "review pull request", value_objects.PriorityMedium, value_objects.MustNewDuration(30*time.Minute))
	require.NoError(t, err)
	tk.ClearEvents()
	return tk
}

func TestCompleteTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	stored := newStoredTask(t, userID)

	repo := new(mockTaskRepo)
	repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil)
	repo.On("Save", mock.Anything, stored).Return(nil)
	publisher := &capturingPublisher{}

	handler := NewCompleteTaskHandler(repo, publisher, nil)

	completed, err := handler.Handle(context.Background(), CompleteTaskCommand{
		TaskID:        stored.ID(),
		UserID:        userID,
		ActualMinutes: 25,
	})

	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, completed.Status())
	assert.Equal(t, 25, completed.ActualMinutes())
	require.NotNil(t, completed.CompletedAt())

	require.Equal(t, []string{task.RoutingKeyCompleted}, publisher.keys)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &payload))
	assert.Equal(t, stored.ID().String(), payload["task_id"])
	assert.Equal(t, "medium", payload["priority"])
	assert.EqualValues(t, 30, payload["estimated_minutes"])
	assert.EqualValues(t, 25, payload["actual_minutes"])
}

func TestCompleteTaskHandler_Handle_AlreadyCompleted(t *testing.T) {
	userID := uuid.New()
	stored := newStoredTask(t, userID)
	require.NoError(t, stored.Complete(10))
	stored.ClearEvents()

	repo := new(mockTaskRepo)
	repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil)

	handler := NewCompleteTaskHandler(repo, &capturingPublisher{}, nil)

	_, err := handler.Handle(context.Background(), CompleteTaskCommand{
		TaskID: stored.ID(),
		UserID: userID,
	})

	assert.ErrorIs(t, err, task.ErrTaskAlreadyComplete)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCompleteTaskHandler_Handle_WrongOwner(t *testing.T) {
	stored := newStoredTask(t, uuid.New())

	repo := new(mockTaskRepo)
	repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil)

	handler := NewCompleteTaskHandler(repo, &capturingPublisher{}, nil)

	_, err := handler.Handle(context.Background(), CompleteTaskCommand{
		TaskID: stored.ID(),
		UserID: uuid.New(),
	})

	assert.ErrorIs(t, err, task.ErrTaskNotOwned)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCompleteTaskHandler_Handle_NotFound(t *testing.T) {
	repo := new(mockTaskRepo)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, task.ErrTaskNotFound)

	handler := NewCompleteTaskHandler(repo, &capturingPublisher{}, nil)

	_, err := handler.Handle(context.Background(), CompleteTaskCommand{
		TaskID: uuid.New(),
		UserID: uuid.New(),
	})

	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestStartTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	stored := newStoredTask(t, userID)

	repo := new(mockTaskRepo)
	repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil)
	repo.On("Save", mock.Anything, stored).Return(nil)
	publisher := &capturingPublisher{}

	handler := NewStartTaskHandler(repo, publisher, nil)

	err := handler.Handle(context.Background(), StartTaskCommand{
		TaskID: stored.ID(),
		UserID: userID,
	})

	require.NoError(t, err)
	assert.Equal(t, task.StatusInProgress, stored.Status())
	assert.Equal(t, []string{task.RoutingKeyStarted}, publisher.keys)
}

func TestCancelTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	stored := newStoredTask(t, userID)

	repo := new(mockTaskRepo)
	repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil)
	repo.On("Save", mock.Anything, stored).Return(nil)
	publisher := &capturingPublisher{}

	handler := NewCancelTaskHandler(repo, publisher, nil)

	err := handler.Handle(context.Background(), CancelTaskCommand{
		TaskID: stored.ID(),
		UserID: userID,
	})

	require.NoError(t, err)
	assert.Equal(t, task.StatusCancelled, stored.Status())
	assert.Equal(t, []string{task.RoutingKeyCancelled}, publisher.keys)
}

func TestDeleteTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	stored := newStoredTask(t, userID)

	repo := new(mockTaskRepo)
	repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil)
	repo.On("Delete", mock.Anything, stored.ID()).Return(nil)

	handler := NewDeleteTaskHandler(repo, nil)

	err := handler.Handle(context.Background(), DeleteTaskCommand{
		TaskID: stored.ID(),
		UserID: userID,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

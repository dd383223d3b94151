package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/application/commands"
	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Append(ctx context.Context, event *domain.TaskEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventRepo) FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.TaskEvent, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskEvent), args.Error(1)
}

func (m *mockEventRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func TestTaskCompletedSubscriber_RoutingKeys(t *testing.T) {
	sub := NewTaskCompletedSubscriber(nil, nil)
	assert.Equal(t, []string{"cadence.task.completed"}, sub.RoutingKeys())
}

func TestTaskCompletedSubscriber_Handle(t *testing.T) {
	repo := new(mockEventRepo)
	repo.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.TaskEvent) bool {
		return e.TaskID == "task-42" &&
			e.Status == domain.EventStatusCompleted &&
			e.Priority == domain.EventPriorityHigh &&
			e.ActualMinutes == 50
	})).Return(nil)

	sub := NewTaskCompletedSubscriber(commands.NewRecordEventHandler(repo, nil), nil)

	payload := []byte(`{
		"user_id": "00000000-0000-0000-0000-000000000001",
		"task_id": "task-42",
		"priority": "high",
		"estimated_minutes": 60,
		"actual_minutes": 50,
		"created_at": "2026-08-03T09:00:00Z",
		"completed_at": "2026-08-03T09:50:00Z"
	}`)

	err := sub.Handle(context.Background(), "cadence.task.completed", payload)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTaskCompletedSubscriber_Handle_MalformedJSONIsDropped(t *testing.T) {
	repo := new(mockEventRepo)
	sub := NewTaskCompletedSubscriber(commands.NewRecordEventHandler(repo, nil), nil)

	err := sub.Handle(context.Background(), "cadence.task.completed", []byte(`{not json`))
	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestTaskCompletedSubscriber_Handle_InvalidEventFails(t *testing.T) {
	repo := new(mockEventRepo)
	sub := NewTaskCompletedSubscriber(commands.NewRecordEventHandler(repo, nil), nil)

	// Completion before creation is rejected by validation.
	payload := []byte(`{
		"user_id": "00000000-0000-0000-0000-000000000001",
		"task_id": "task-43",
		"priority": "low",
		"estimated_minutes": 30,
		"created_at": "2026-08-03T09:00:00Z",
		"completed_at": "2026-08-03T08:00:00Z"
	}`)

	err := sub.Handle(context.Background(), "cadence.task.completed", payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

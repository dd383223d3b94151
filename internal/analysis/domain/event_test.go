package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() TaskEvent {
	created := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	completed := created.Add(2 * time.Hour)
	return TaskEvent{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		TaskID:           "task-1",
		Status:           EventStatusCompleted,
		Priority:         EventPriorityHigh,
		EstimatedMinutes: 60,
		CreatedAt:        created,
		CompletedAt:      &completed,
	}
}

func TestTaskEvent_Validate(t *testing.T) {
	t.Run("valid event passes", func(t *testing.T) {
		assert.NoError(t, validEvent().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*TaskEvent)
		reason string
	}{
		{
			name:   "empty task id",
			mutate: func(e *TaskEvent) { e.TaskID = "" },
			reason: "task identifier is empty",
		},
		{
			name:   "unknown status",
			mutate: func(e *TaskEvent) { e.Status = "paused" },
			reason: "unknown status paused",
		},
		{
			name:   "unknown priority",
			mutate: func(e *TaskEvent) { e.Priority = "urgent-ish" },
			reason: "unknown priority urgent-ish",
		},
		{
			name:   "non-positive estimate",
			mutate: func(e *TaskEvent) { e.EstimatedMinutes = 0 },
			reason: "estimated duration must be positive",
		},
		{
			name: "completion before creation",
			mutate: func(e *TaskEvent) {
				before := e.CreatedAt.Add(-time.Minute)
				e.CompletedAt = &before
			},
			reason: "completion timestamp precedes creation",
		},
		{
			name:   "completed without timestamp",
			mutate: func(e *TaskEvent) { e.CompletedAt = nil },
			reason: "completed status without completion timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(&e)

			err := e.Validate()
			require.Error(t, err)

			var evErr *InvalidEventError
			require.ErrorAs(t, err, &evErr)
			assert.Equal(t, tt.reason, evErr.Reason)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestTaskEvent_IsCompleted(t *testing.T) {
	e := validEvent()
	assert.True(t, e.IsCompleted())

	e.Status = EventStatusCancelled
	assert.False(t, e.IsCompleted())

	e = validEvent()
	e.CompletedAt = nil
	assert.False(t, e.IsCompleted())
}

func TestParseEventStatus(t *testing.T) {
	s, ok := ParseEventStatus("Completed")
	require.True(t, ok)
	assert.Equal(t, EventStatusCompleted, s)

	_, ok = ParseEventStatus("done")
	assert.False(t, ok)
}

func TestParseEventPriority(t *testing.T) {
	p, ok := ParseEventPriority("CRITICAL")
	require.True(t, ok)
	assert.Equal(t, EventPriorityCritical, p)

	_, ok = ParseEventPriority("urgent")
	assert.False(t, ok)
}

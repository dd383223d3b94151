package services

import (
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/cadencehq/cadence/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTask(t *testing.T, title string, priority value_objects.Priority, dueDate *time.Time) *task.Task {
	t.Helper()
	tk, err := task.NewTask(uuid.New(), title, priority, value_objects.MustNewDuration(time.Hour))
	require.NoError(t, err)
	require.NoError(t, tk.SetDueDate(dueDate))
	return tk
}

func TestPriorityEngine_Prioritize_Ranking(t *testing.T) {
	engine := NewPriorityEngine()
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	tomorrow := now.AddDate(0, 0, 1)
	nextMonth := now.AddDate(0, 1, 0)

	urgent := newTestTask(t, "ship release", value_objects.PriorityCritical, &tomorrow)
	someday := newTestTask(t, "clean inbox", value_objects.PriorityLow, nil)
	planned := newTestTask(t, "write roadmap", value_objects.PriorityHigh, &nextMonth)

	ranked := engine.Prioritize([]*task.Task{someday, planned, urgent}, now)
	require.Len(t, ranked, 3)

	assert.Equal(t, "ship release", ranked[0].Task.Title())
	assert.Equal(t, "write roadmap", ranked[1].Task.Title())
	assert.Equal(t, "clean inbox", ranked[2].Task.Title())

	// critical priority due tomorrow: 9*0.4 + 10*0.6
	assert.InDelta(t, 9.6, ranked[0].Score, 1e-9)
}

func TestPriorityEngine_Prioritize_Quadrants(t *testing.T) {
	engine := NewPriorityEngine()
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	tomorrow := now.AddDate(0, 0, 1)
	nextMonth := now.AddDate(0, 1, 0)

	tests := []struct {
		name     string
		task     *task.Task
		expected Quadrant
	}{
		{
			name:     "urgent and important",
			task:     newTestTask(t, "a", value_objects.PriorityCritical, &tomorrow),
			expected: QuadrantDoFirst,
		},
		{
			name:     "important, not urgent",
			task:     newTestTask(t, "b", value_objects.PriorityHigh, &nextMonth),
			expected: QuadrantSchedule,
		},
		{
			name:     "urgent, not important",
			task:     newTestTask(t, "c", value_objects.PriorityLow, &tomorrow),
			expected: QuadrantDelegate,
		},
		{
			name:     "neither",
			task:     newTestTask(t, "d", value_objects.PriorityLow, nil),
			expected: QuadrantEliminate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := engine.Prioritize([]*task.Task{tt.task}, now)
			require.Len(t, ranked, 1)
			assert.Equal(t, tt.expected, ranked[0].Quadrant)
		})
	}
}

func TestPriorityEngine_Prioritize_SkipsClosedTasks(t *testing.T) {
	engine := NewPriorityEngine()
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	open := newTestTask(t, "open", value_objects.PriorityMedium, nil)
	done := newTestTask(t, "done", value_objects.PriorityMedium, nil)
	require.NoError(t, done.Complete(30))
	dropped := newTestTask(t, "dropped", value_objects.PriorityMedium, nil)
	require.NoError(t, dropped.Cancel())

	ranked := engine.Prioritize([]*task.Task{open, done, dropped}, now)
	require.Len(t, ranked, 1)
	assert.Equal(t, "open", ranked[0].Task.Title())
}

func TestPriorityEngine_Prioritize_OverdueOutranksDistant(t *testing.T) {
	engine := NewPriorityEngine()
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	yesterday := now.AddDate(0, 0, -1)
	nextWeek := now.AddDate(0, 0, 7)

	late := newTestTask(t, "late report", value_objects.PriorityMedium, &yesterday)
	upcoming := newTestTask(t, "next review", value_objects.PriorityMedium, &nextWeek)

	ranked := engine.Prioritize([]*task.Task{upcoming, late}, now)
	require.Len(t, ranked, 2)
	assert.Equal(t, "late report", ranked[0].Task.Title())
	assert.Equal(t, 10.0, ranked[0].Urgency)
}

func TestPriorityEngine_Prioritize_TieBreaksByDueDate(t *testing.T) {
	engine := NewPriorityEngine()
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	soon := now.AddDate(0, 0, 2)
	later := now.AddDate(0, 0, 3)

	second := newTestTask(t, "zz", value_objects.PriorityHigh, &later)
	first := newTestTask(t, "aa", value_objects.PriorityHigh, &soon)

	ranked := engine.Prioritize([]*task.Task{second, first}, now)
	require.Len(t, ranked, 2)
	assert.Equal(t, "aa", ranked[0].Task.Title())
}

package queries

import (
	"context"
	"time"

	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// TaskReport summarizes a user's task list.
type TaskReport struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	ByPriority     map[string]int `json:"by_priority"`
	Overdue        int            `json:"overdue"`
	CompletionRate float64        `json:"completion_rate"`
}

// TaskReportQuery builds a summary report over all of a user's tasks.
type TaskReportQuery struct {
	UserID uuid.UUID
	Now    time.Time
}

// TaskReportHandler handles the TaskReportQuery.
type TaskReportHandler struct {
	tasks task.Repository
}

// NewTaskReportHandler creates a new TaskReportHandler.
func NewTaskReportHandler(tasks task.Repository) *TaskReportHandler {
	return &TaskReportHandler{tasks: tasks}
}

// Handle executes the TaskReportQuery.
func (h *TaskReportHandler) Handle(ctx context.Context, q TaskReportQuery) (*TaskReport, error) {
	now := q.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	tasks, err := h.tasks.FindByUserID(ctx, q.UserID, task.Filter{})
	if err != nil {
		return nil, err
	}

	report := &TaskReport{
		Total:      len(tasks),
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}

	completed := 0
	for _, t := range tasks {
		report.ByStatus[t.Status().String()]++
		report.ByPriority[t.Priority().String()]++
		if t.IsOverdue(now) {
			report.Overdue++
		}
		if t.IsCompleted() {
			completed++
		}
	}

	if len(tasks) > 0 {
		report.CompletionRate = float64(completed) / float64(len(tasks))
	}

	return report, nil
}

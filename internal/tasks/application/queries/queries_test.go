package queries

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/cadencehq/cadence/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUserID(ctx context.Context, userID uuid.UUID, filter task.Filter) ([]*task.Task, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func buildTask(t *testing.T, userID uuid.UUID, title, priority string, mutate func(*task.Task)) *task.Task {
	t.Helper()
	p, err := value_objects.ParsePriority(priority)
	require.NoError(t, err)
	tk, err := task.NewTask(userID, title, p, value_objects.MustNewDuration(time.Hour))
	require.NoError(t, err)
	if mutate != nil {
		mutate(tk)
	}
	tk.ClearEvents()
	return tk
}

func TestListTasksHandler_Handle_StatusFilter(t *testing.T) {
	userID := uuid.New()
	repo := new(mockTaskRepo)

	completed := task.StatusCompleted
	repo.On("FindByUserID", mock.Anything, userID, task.Filter{Status: &completed}).
		Return([]*task.Task{}, nil)

	handler := NewListTasksHandler(repo, nil)
	_, err := handler.Handle(context.Background(), ListTasksQuery{UserID: userID, Status: "completed"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListTasksHandler_Handle_InvalidStatus(t *testing.T) {
	handler := NewListTasksHandler(new(mockTaskRepo), nil)

	_, err := handler.Handle(context.Background(), ListTasksQuery{UserID: uuid.New(), Status: "paused"})
	assert.Error(t, err)
}

func TestGetTaskHandler_Handle_WrongOwner(t *testing.T) {
	stored := buildTask(t, uuid.New(), "other user's task", "low", nil)

	repo := new(mockTaskRepo)
	repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil)

	handler := NewGetTaskHandler(repo)
	_, err := handler.Handle(context.Background(), GetTaskQuery{TaskID: stored.ID(), UserID: uuid.New()})

	assert.ErrorIs(t, err, task.ErrTaskNotOwned)
}

func TestTaskReportHandler_Handle(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	tasks := []*task.Task{
		buildTask(t, userID, "done", "high", func(tk *task.Task) {
			require.NoError(t, tk.Complete(45))
		}),
		buildTask(t, userID, "late", "medium", func(tk *task.Task) {
			require.NoError(t, tk.SetDueDate(&yesterday))
		}),
		buildTask(t, userID, "open", "medium", nil),
		buildTask(t, userID, "dropped", "low", func(tk *task.Task) {
			require.NoError(t, tk.Cancel())
		}),
	}

	repo := new(mockTaskRepo)
	repo.On("FindByUserID", mock.Anything, userID, task.Filter{}).Return(tasks, nil)

	handler := NewTaskReportHandler(repo)
	report, err := handler.Handle(context.Background(), TaskReportQuery{UserID: userID, Now: now})

	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 1, report.ByStatus["completed"])
	assert.Equal(t, 2, report.ByStatus["pending"])
	assert.Equal(t, 1, report.ByStatus["cancelled"])
	assert.Equal(t, 2, report.ByPriority["medium"])
	assert.Equal(t, 1, report.Overdue)
	assert.InDelta(t, 0.25, report.CompletionRate, 1e-9)
}

func TestTaskReportHandler_Handle_Empty(t *testing.T) {
	userID := uuid.New()
	repo := new(mockTaskRepo)
	repo.On("FindByUserID", mock.Anything, userID, task.Filter{}).Return([]*task.Task{}, nil)

	handler := NewTaskReportHandler(repo)
	report, err := handler.Handle(context.Background(), TaskReportQuery{UserID: userID})

	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.Zero(t, report.CompletionRate)
}

func TestExportTasksHandler_Handle_JSON(t *testing.T) {
	userID := uuid.New()
	tasks := []*task.Task{
		buildTask(t, userID, "export me", "high", func(tk *task.Task) {
			require.NoError(t, tk.SetTags([]string{"a", "b"}))
		}),
	}

	repo := new(mockTaskRepo)
	repo.On("FindByUserID", mock.Anything, userID, task.Filter{}).Return(tasks, nil)

	handler := NewExportTasksHandler(repo)
	var buf bytes.Buffer
	err := handler.Handle(context.Background(), ExportTasksQuery{UserID: userID, Format: FormatJSON}, &buf)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "export me", rows[0]["title"])
	assert.Equal(t, "high", rows[0]["priority"])
}

func TestExportTasksHandler_Handle_CSV(t *testing.T) {
	userID := uuid.New()
	tasks := []*task.Task{
		buildTask(t, userID, "first", "low", nil),
		buildTask(t, userID, "second", "medium", nil),
	}

	repo := new(mockTaskRepo)
	repo.On("FindByUserID", mock.Anything, userID, task.Filter{}).Return(tasks, nil)

	handler := NewExportTasksHandler(repo)
	var buf bytes.Buffer
	err := handler.Handle(context.Background(), ExportTasksQuery{UserID: userID, Format: FormatCSV}, &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + two rows
	assert.Equal(t, "title", records[0][1])
	assert.Equal(t, "first", records[1][1])
	assert.Equal(t, "second", records[2][1])
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = ParseExportFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownExportFormat)
}

package queries

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// ErrUnknownExportFormat is returned for formats other than json and csv.
var ErrUnknownExportFormat = errors.New("unknown export format")

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// ParseExportFormat creates an ExportFormat from a string.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExportFormat, s)
	}
}

// exportedTask is the flattened export row.
type exportedTask struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	ActualMinutes    int        `json:"actual_minutes,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ExportTasksQuery writes a user's tasks to w in the chosen format.
type ExportTasksQuery struct {
	UserID uuid.UUID
	Format ExportFormat
	Status string
}

// ExportTasksHandler handles the ExportTasksQuery.
type ExportTasksHandler struct {
	tasks task.Repository
}

// NewExportTasksHandler creates a new ExportTasksHandler.
func NewExportTasksHandler(tasks task.Repository) *ExportTasksHandler {
	return &ExportTasksHandler{tasks: tasks}
}

// Handle executes the ExportTasksQuery.
func (h *ExportTasksHandler) Handle(ctx context.Context, q ExportTasksQuery, w io.Writer) error {
	filter := task.Filter{}
	if q.Status != "" {
		status, err := task.ParseStatus(q.Status)
		if err != nil {
			return err
		}
		filter.Status = &status
	}

	tasks, err := h.tasks.FindByUserID(ctx, q.UserID, filter)
	if err != nil {
		return err
	}

	rows := make([]exportedTask, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, exportedTask{
			ID:               t.ID().String(),
			Title:            t.Title(),
			Description:      t.Description(),
			Status:           t.Status().String(),
			Priority:         t.Priority().String(),
			EstimatedMinutes: t.Estimate().Minutes(),
			ActualMinutes:    t.ActualMinutes(),
			Tags:             t.Tags(),
			DueDate:          t.DueDate(),
			CompletedAt:      t.CompletedAt(),
			CreatedAt:        t.CreatedAt(),
		})
	}

	switch q.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatCSV:
		return writeCSV(w, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExportFormat, q.Format)
	}
}

func writeCSV(w io.Writer, rows []exportedTask) error {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "title", "description", "status", "priority",
		"estimated_minutes", "actual_minutes", "tags",
		"due_date", "completed_at", "created_at",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.ID,
			row.Title,
			row.Description,
			row.Status,
			row.Priority,
			strconv.Itoa(row.EstimatedMinutes),
			strconv.Itoa(row.ActualMinutes),
			strings.Join(row.Tags, ";"),
			formatTime(row.DueDate),
			formatTime(row.CompletedAt),
			row.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

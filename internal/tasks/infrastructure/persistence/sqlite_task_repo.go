// Package persistence provides the SQLite-backed task store.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	"github.com/cadencehq/cadence/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

// SQLiteTaskRepository implements task.Repository using SQLite.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

// Save upserts a task.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t *task.Task) error {
	tagsJSON, err := json.Marshal(t.Tags())
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO tasks (
			id, user_id, title, description, status, priority,
			estimated_minutes, actual_minutes, tags,
			due_date, started_at, completed_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			priority = excluded.priority,
			estimated_minutes = excluded.estimated_minutes,
			actual_minutes = excluded.actual_minutes,
			tags = excluded.tags,
			due_date = excluded.due_date,
			started_at = excluded.started_at,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		t.ID().String(),
		t.UserID().String(),
		t.Title(),
		t.Description(),
		t.Status().String(),
		t.Priority().String(),
		t.Estimate().Minutes(),
		t.ActualMinutes(),
		string(tagsJSON),
		nullableTime(t.DueDate()),
		nullableTime(t.StartedAt()),
		nullableTime(t.CompletedAt()),
		t.CreatedAt().UTC().Format(time.RFC3339),
		t.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

// FindByID returns the task with the given id, or ErrTaskNotFound.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	rows, err := r.db.QueryContext(ctx, selectTasks+` WHERE id = ?`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, task.ErrTaskNotFound
	}
	return scanTask(rows)
}

// FindByUserID returns a user's tasks matching the filter, newest first.
func (r *SQLiteTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter task.Filter) ([]*task.Task, error) {
	query := selectTasks + ` WHERE user_id = ?`
	args := []any{userID.String()}

	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, filter.Status.String())
	}
	if filter.DueOnly || filter.Overdue {
		query += ` AND due_date IS NOT NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		if filter.Overdue && !t.IsOverdue(now) {
			continue
		}
		if filter.Tag != "" && !hasTag(t, filter.Tag) {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Delete removes a task permanently.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

const selectTasks = `
	SELECT id, user_id, title, description, status, priority,
		estimated_minutes, actual_minutes, tags,
		due_date, started_at, completed_at, created_at, updated_at
	FROM tasks`

func scanTask(rows *sql.Rows) (*task.Task, error) {
	var (
		idStr, userIDStr, title, statusStr, priorityStr, tagsStr string
		description                                              sql.NullString
		estimatedMinutes, actualMinutes                          int
		dueDateStr, startedAtStr, completedAtStr                 sql.NullString
		createdAtStr, updatedAtStr                               string
	)

	err := rows.Scan(
		&idStr, &userIDStr, &title, &description, &statusStr, &priorityStr,
		&estimatedMinutes, &actualMinutes, &tagsStr,
		&dueDateStr, &startedAtStr, &completedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid task id: %w", err)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	status, err := task.ParseStatus(statusStr)
	if err != nil {
		return nil, err
	}
	priority, err := value_objects.ParsePriority(priorityStr)
	if err != nil {
		return nil, err
	}
	estimate, err := value_objects.DurationFromMinutes(estimatedMinutes)
	if err != nil {
		return nil, fmt.Errorf("invalid estimate for task %s: %w", idStr, err)
	}

	var tags []string
	if tagsStr != "" && tagsStr != "[]" {
		if err := json.Unmarshal([]byte(tagsStr), &tags); err != nil {
			return nil, fmt.Errorf("invalid tags: %w", err)
		}
	}

	dueDate, err := parseNullableTime(dueDateStr)
	if err != nil {
		return nil, err
	}
	startedAt, err := parseNullableTime(startedAtStr)
	if err != nil {
		return nil, err
	}
	completedAt, err := parseNullableTime(completedAtStr)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at: %w", err)
	}

	return task.Rehydrate(
		id, userID,
		title, description.String,
		status, priority, estimate, tags,
		dueDate, startedAt, completedAt,
		actualMinutes,
		createdAt, updatedAt,
	), nil
}

func hasTag(t *task.Task, tag string) bool {
	for _, candidate := range t.Tags() {
		if candidate == tag {
			return true
		}
	}
	return false
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, errors.New("invalid timestamp: " + s.String)
	}
	return &t, nil
}

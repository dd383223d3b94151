// Package persistence provides storage implementations for the analysis
// event log.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
)

// SQLiteEventRepository implements domain.EventRepository using SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

// NewSQLiteEventRepository creates a new SQLite event repository.
func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

// Append stores a validated event. The log is append-only.
func (r *SQLiteEventRepository) Append(ctx context.Context, event *domain.TaskEvent) error {
	tagsJSON, err := json.Marshal(event.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO task_events (
			id, user_id, task_id, status, priority,
			estimated_minutes, actual_minutes, tags,
			created_at, completed_at, due_date, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		event.ID.String(),
		event.UserID.String(),
		event.TaskID,
		string(event.Status),
		string(event.Priority),
		event.EstimatedMinutes,
		event.ActualMinutes,
		string(tagsJSON),
		event.CreatedAt.UTC().Format(time.RFC3339),
		nullableTime(event.CompletedAt),
		nullableTime(event.DueDate),
		event.RecordedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// FindByUserAndRange returns events created in [start, end], oldest first.
func (r *SQLiteEventRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.TaskEvent, error) {
	query := `
		SELECT id, user_id, task_id, status, priority,
			estimated_minutes, actual_minutes, tags,
			created_at, completed_at, due_date, recorded_at
		FROM task_events
		WHERE user_id = ? AND created_at >= ? AND created_at <= ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query,
		userID.String(),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.TaskEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountByUser returns the number of logged events for a user.
func (r *SQLiteEventRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM task_events WHERE user_id = ?`,
		userID.String(),
	).Scan(&count)
	return count, err
}

func scanEvent(rows *sql.Rows) (domain.TaskEvent, error) {
	var e domain.TaskEvent
	var idStr, userIDStr, tagsStr, createdAtStr, recordedAtStr string
	var completedAtStr, dueDateStr sql.NullString

	err := rows.Scan(
		&idStr, &userIDStr, &e.TaskID, &e.Status, &e.Priority,
		&e.EstimatedMinutes, &e.ActualMinutes, &tagsStr,
		&createdAtStr, &completedAtStr, &dueDateStr, &recordedAtStr,
	)
	if err != nil {
		return domain.TaskEvent{}, err
	}

	e.ID, err = uuid.Parse(idStr)
	if err != nil {
		return domain.TaskEvent{}, fmt.Errorf("invalid event id: %w", err)
	}
	e.UserID, err = uuid.Parse(userIDStr)
	if err != nil {
		return domain.TaskEvent{}, fmt.Errorf("invalid user id: %w", err)
	}

	e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return domain.TaskEvent{}, fmt.Errorf("invalid created_at: %w", err)
	}
	e.RecordedAt, err = time.Parse(time.RFC3339, recordedAtStr)
	if err != nil {
		return domain.TaskEvent{}, fmt.Errorf("invalid recorded_at: %w", err)
	}

	if completedAtStr.Valid {
		completedAt, err := time.Parse(time.RFC3339, completedAtStr.String)
		if err != nil {
			return domain.TaskEvent{}, fmt.Errorf("invalid completed_at: %w", err)
		}
		e.CompletedAt = &completedAt
	}
	if dueDateStr.Valid {
		dueDate, err := time.Parse(time.RFC3339, dueDateStr.String)
		if err != nil {
			return domain.TaskEvent{}, fmt.Errorf("invalid due_date: %w", err)
		}
		e.DueDate = &dueDate
	}

	if tagsStr != "" && tagsStr != "[]" {
		if err := json.Unmarshal([]byte(tagsStr), &e.Tags); err != nil {
			return domain.TaskEvent{}, fmt.Errorf("invalid tags: %w", err)
		}
	}

	return e, nil
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

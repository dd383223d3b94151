package persistence

import (
	"context"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresEventRepository implements domain.EventRepository using PostgreSQL.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgreSQL event repository.
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// Append stores a validated event. The log is append-only.
func (r *PostgresEventRepository) Append(ctx context.Context, event *domain.TaskEvent) error {
	query := `
		INSERT INTO task_events (
			id, user_id, task_id, status, priority,
			estimated_minutes, actual_minutes, tags,
			created_at, completed_at, due_date, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.UserID,
		event.TaskID,
		string(event.Status),
		string(event.Priority),
		event.EstimatedMinutes,
		event.ActualMinutes,
		event.Tags,
		event.CreatedAt.UTC(),
		event.CompletedAt,
		event.DueDate,
		event.RecordedAt.UTC(),
	)
	return err
}

// FindByUserAndRange returns events created in [start, end], oldest first.
func (r *PostgresEventRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]domain.TaskEvent, error) {
	query := `
		SELECT id, user_id, task_id, status, priority,
			estimated_minutes, actual_minutes, tags,
			created_at, completed_at, due_date, recorded_at
		FROM task_events
		WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, userID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.TaskEvent
	for rows.Next() {
		var e domain.TaskEvent
		var status, priority string
		err := rows.Scan(
			&e.ID, &e.UserID, &e.TaskID, &status, &priority,
			&e.EstimatedMinutes, &e.ActualMinutes, &e.Tags,
			&e.CreatedAt, &e.CompletedAt, &e.DueDate, &e.RecordedAt,
		)
		if err != nil {
			return nil, err
		}
		e.Status = domain.EventStatus(status)
		e.Priority = domain.EventPriority(priority)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountByUser returns the number of logged events for a user.
func (r *PostgresEventRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM task_events WHERE user_id = $1`,
		userID,
	).Scan(&count)
	return count, err
}

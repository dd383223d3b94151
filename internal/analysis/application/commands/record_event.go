// Package commands contains the write-side handlers of the analysis context.
package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
)

// RecordEventCommand appends one task lifecycle observation to the event log.
type RecordEventCommand struct {
	UserID           uuid.UUID
	TaskID           string
	Status           string
	Priority         string
	EstimatedMinutes int
	ActualMinutes    int
	Tags             []string
	CreatedAt        time.Time
	CompletedAt      *time.Time
	DueDate          *time.Time
}

// RecordEventHandler validates and persists task events.
type RecordEventHandler struct {
	events domain.EventRepository
	logger *slog.Logger
}

// NewRecordEventHandler creates a new record handler.
func NewRecordEventHandler(events domain.EventRepository, logger *slog.Logger) *RecordEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordEventHandler{events: events, logger: logger}
}

// Handle executes the command. Malformed records fail with InvalidEventError
// and are never partially stored.
func (h *RecordEventHandler) Handle(ctx context.Context, cmd RecordEventCommand) (*domain.TaskEvent, error) {
	event := domain.TaskEvent{
		ID:               uuid.New(),
		UserID:           cmd.UserID,
		TaskID:           cmd.TaskID,
		Status:           domain.EventStatus(cmd.Status),
		Priority:         domain.EventPriority(cmd.Priority),
		EstimatedMinutes: cmd.EstimatedMinutes,
		ActualMinutes:    cmd.ActualMinutes,
		Tags:             cmd.Tags,
		CreatedAt:        cmd.CreatedAt,
		CompletedAt:      cmd.CompletedAt,
		DueDate:          cmd.DueDate,
		RecordedAt:       time.Now().UTC(),
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := h.events.Append(ctx, &event); err != nil {
		return nil, err
	}

	h.logger.Debug("recorded task event",
		"user_id", cmd.UserID.String(),
		"task_id", cmd.TaskID,
		"status", cmd.Status,
	)

	return &event, nil
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/application/commands"
	"github.com/cadencehq/cadence/internal/analysis/application/queries"
	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
)

// WorkflowRequest is the dispatch payload of POST /api/v1/workflow. Action
// selects the operation; Event is only read by the log action. WindowStart
// and WindowEnd select an explicit analysis window instead of a named
// time_range.
type WorkflowRequest struct {
	Action      string         `json:"action"`
	UserID      string         `json:"user_id"`
	TimeRange   string         `json:"time_range,omitempty"`
	WindowStart *time.Time     `json:"window_start,omitempty"`
	WindowEnd   *time.Time     `json:"window_end,omitempty"`
	Event       *WorkflowEvent `json:"event,omitempty"`
}

// WorkflowEvent is the record payload of the log action.
type WorkflowEvent struct {
	TaskID           string     `json:"task_id"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	ActualMinutes    int        `json:"actual_minutes,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
}

// actionFunc executes one workflow action against a parsed request.
type actionFunc func(ctx context.Context, userID uuid.UUID, req WorkflowRequest) (any, error)

// WorkflowHandler dispatches workflow requests over a typed action registry.
type WorkflowHandler struct {
	actions map[string]actionFunc
	logger  *slog.Logger
}

// NewWorkflowHandler registers the analyze, recommend and log actions.
func NewWorkflowHandler(
	analyze *queries.AnalyzePatternsHandler,
	recommend *queries.GetRecommendationsHandler,
	record *commands.RecordEventHandler,
	logger *slog.Logger,
) *WorkflowHandler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &WorkflowHandler{logger: logger}
	h.actions = map[string]actionFunc{
		"analyze": func(ctx context.Context, userID uuid.UUID, req WorkflowRequest) (any, error) {
			rng, window, err := parseWindow(req)
			if err != nil {
				return nil, err
			}
			return analyze.Handle(ctx, queries.AnalyzePatternsQuery{UserID: userID, Range: rng, Window: window})
		},
		"recommend": func(ctx context.Context, userID uuid.UUID, req WorkflowRequest) (any, error) {
			rng, window, err := parseWindow(req)
			if err != nil {
				return nil, err
			}
			recs, err := recommend.Handle(ctx, queries.GetRecommendationsQuery{UserID: userID, Range: rng, Window: window})
			if err != nil {
				return nil, err
			}
			return map[string]any{"recommendations": recs}, nil
		},
		"log": func(ctx context.Context, userID uuid.UUID, req WorkflowRequest) (any, error) {
			if req.Event == nil {
				return nil, badRequestf("log action requires an event payload")
			}
			event, err := record.Handle(ctx, commands.RecordEventCommand{
				UserID:           userID,
				TaskID:           req.Event.TaskID,
				Status:           req.Event.Status,
				Priority:         req.Event.Priority,
				EstimatedMinutes: req.Event.EstimatedMinutes,
				ActualMinutes:    req.Event.ActualMinutes,
				Tags:             req.Event.Tags,
				CreatedAt:        req.Event.CreatedAt,
				CompletedAt:      req.Event.CompletedAt,
				DueDate:          req.Event.DueDate,
			})
			if err != nil {
				return nil, err
			}
			return map[string]any{"event_id": event.ID.String(), "recorded": true}, nil
		},
	}
	return h
}

// Dispatch handles POST /api/v1/workflow.
func (h *WorkflowHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed JSON payload")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "user_id must be a UUID")
		return
	}

	action, ok := h.actions[req.Action]
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Sprintf("unknown action %q (use analyze, recommend or log)", req.Action))
		return
	}

	result, err := action(r.Context(), userID, req)
	if err != nil {
		h.writeActionError(w, req.Action, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeActionError maps the analyzer error taxonomy onto HTTP statuses.
func (h *WorkflowHandler) writeActionError(w http.ResponseWriter, action string, err error) {
	var badReq *badRequestError
	switch {
	case errors.As(err, &badReq):
		writeError(w, http.StatusBadRequest, "bad_request", badReq.message)
	case errors.Is(err, domain.ErrInvalidConfiguration):
		writeError(w, http.StatusUnprocessableEntity, "invalid_configuration", err.Error())
	case errors.Is(err, domain.ErrInsufficientData):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_data", err.Error())
	case errors.Is(err, domain.ErrInvalidEvent):
		writeError(w, http.StatusBadRequest, "invalid_event", err.Error())
	default:
		h.logger.Error("workflow action failed", "action", action, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// parseWindow resolves the request onto either a named range or an explicit
// window. Explicit bounds win when both are present.
func parseWindow(req WorkflowRequest) (domain.NamedRange, *domain.AnalysisWindow, error) {
	if req.WindowStart != nil || req.WindowEnd != nil {
		if req.WindowStart == nil || req.WindowEnd == nil {
			return "", nil, badRequestf("explicit windows require both window_start and window_end")
		}
		if req.WindowEnd.Before(*req.WindowStart) {
			return "", nil, badRequestf("window_end must not precede window_start")
		}
		window := domain.NewWindow(*req.WindowStart, *req.WindowEnd)
		return "", &window, nil
	}

	s := req.TimeRange
	if s == "" {
		s = "week"
	}
	rng, ok := domain.ParseNamedRange(s)
	if !ok {
		return "", nil, badRequestf("invalid time_range %q (use day, week or month)", s)
	}
	return rng, nil, nil
}

type badRequestError struct {
	message string
}

func (e *badRequestError) Error() string { return e.message }

func badRequestf(format string, args ...any) error {
	return &badRequestError{message: fmt.Sprintf(format, args...)}
}

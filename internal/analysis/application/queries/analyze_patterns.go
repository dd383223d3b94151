// Package queries contains the read-side handlers of the analysis context.
package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/application/services"
	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
)

// AnalyzePatternsQuery requests a productivity report for a user over a
// named trailing range, or over an explicit window when Window is set.
type AnalyzePatternsQuery struct {
	UserID uuid.UUID
	Range  domain.NamedRange
	// Window overrides Range with explicit start and end timestamps.
	// Explicit windows bypass the report cache.
	Window *domain.AnalysisWindow
	// Now anchors the trailing window; zero means the current time.
	Now time.Time
}

// AnalyzePatternsHandler loads the user's event snapshot, runs the pattern
// analyzer and caches the report for the recommend projection.
type AnalyzePatternsHandler struct {
	events        domain.EventRepository
	cache         domain.ReportCache
	analyzer      *services.PatternAnalyzer
	weights       domain.ScoreWeights
	minimumSample int
	logger        *slog.Logger
}

// NewAnalyzePatternsHandler creates a new analyze handler. The cache may be
// nil when no report cache is configured.
func NewAnalyzePatternsHandler(
	events domain.EventRepository,
	cache domain.ReportCache,
	weights domain.ScoreWeights,
	minimumSample int,
	logger *slog.Logger,
) *AnalyzePatternsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzePatternsHandler{
		events:        events,
		cache:         cache,
		analyzer:      services.NewPatternAnalyzer(),
		weights:       weights,
		minimumSample: minimumSample,
		logger:        logger,
	}
}

// Handle executes the query.
func (h *AnalyzePatternsHandler) Handle(ctx context.Context, q AnalyzePatternsQuery) (*domain.ProductivityReport, error) {
	now := q.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var window domain.AnalysisWindow
	if q.Window != nil {
		// Explicit windows carry their own threshold.
		window = *q.Window
	} else {
		window = domain.WindowForRange(q.Range, now)
		if h.minimumSample > 0 {
			window.MinimumSample = h.minimumSample
		}
	}

	events, err := h.events.FindByUserAndRange(ctx, q.UserID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load event snapshot: %w", err)
	}

	report, err := h.analyzer.Analyze(events, window, h.weights)
	if err != nil {
		return nil, err
	}
	report.UserID = q.UserID.String()

	if h.cache != nil && q.Window == nil {
		h.cache.Set(ctx, q.UserID, q.Range, report)
	}

	h.logger.Debug("analyzed workflow patterns",
		"user_id", q.UserID.String(),
		"range", string(q.Range),
		"sample_size", report.SampleSize,
		"productivity_score", report.ProductivityScore,
	)

	return report, nil
}

package queries

import (
	"context"
	"log/slog"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/application/services"
	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
)

// GetRecommendationsQuery requests the recommendation list for a user over a
// named trailing range.
type GetRecommendationsQuery struct {
	UserID uuid.UUID
	Range  domain.NamedRange
	// Window overrides Range with explicit start and end timestamps.
	Window *domain.AnalysisWindow
	Now    time.Time
}

// GetRecommendationsHandler projects recommendations from the cached report,
// recomputing through the analyze handler on a cache miss.
type GetRecommendationsHandler struct {
	analyze  *AnalyzePatternsHandler
	cache    domain.ReportCache
	analyzer *services.PatternAnalyzer
	logger   *slog.Logger
}

// NewGetRecommendationsHandler creates a new recommendations handler. The
// cache may be nil when no report cache is configured.
func NewGetRecommendationsHandler(analyze *AnalyzePatternsHandler, cache domain.ReportCache, logger *slog.Logger) *GetRecommendationsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetRecommendationsHandler{
		analyze:  analyze,
		cache:    cache,
		analyzer: services.NewPatternAnalyzer(),
		logger:   logger,
	}
}

// Handle executes the query.
func (h *GetRecommendationsHandler) Handle(ctx context.Context, q GetRecommendationsQuery) ([]string, error) {
	if h.cache != nil && q.Window == nil {
		if report, ok := h.cache.Get(ctx, q.UserID, q.Range); ok {
			h.logger.Debug("served recommendations from cached report",
				"user_id", q.UserID.String(),
				"range", string(q.Range),
			)
			return h.analyzer.Recommend(report), nil
		}
	}

	report, err := h.analyze.Handle(ctx, AnalyzePatternsQuery{UserID: q.UserID, Range: q.Range, Window: q.Window, Now: q.Now})
	if err != nil {
		return nil, err
	}
	return h.analyzer.Recommend(report), nil
}

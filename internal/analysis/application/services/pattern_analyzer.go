// Package services contains the analysis computations that turn task event
// snapshots into productivity reports.
package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/domain"
)

const (
	// procrastinationCutoff flags a task finished in the final 20% of its
	// available time before the deadline.
	procrastinationCutoff = 0.8

	maxPeakHours       = 3
	maxRecommendations = 5
)

// PatternAnalyzer transforms a bounded collection of task events into a
// productivity report. It is stateless and safe for concurrent use over
// independent snapshots.
type PatternAnalyzer struct{}

// NewPatternAnalyzer creates a new analyzer.
func NewPatternAnalyzer() *PatternAnalyzer {
	return &PatternAnalyzer{}
}

// Analyze computes a report over the events whose creation timestamp falls
// inside the window. Events may arrive unsorted. It fails with
// InvalidConfigurationError for malformed weights, InvalidEventError for a
// malformed record, and InsufficientDataError when the filtered sample is
// below the window threshold.
func (a *PatternAnalyzer) Analyze(events []domain.TaskEvent, window domain.AnalysisWindow, weights domain.ScoreWeights) (*domain.ProductivityReport, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	filtered := make([]domain.TaskEvent, 0, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if window.Contains(e.CreatedAt) {
			filtered = append(filtered, e)
		}
	}

	if len(filtered) < window.Threshold() {
		return nil, &domain.InsufficientDataError{Actual: len(filtered), Required: window.Threshold()}
	}

	completed := make([]domain.TaskEvent, 0, len(filtered))
	for _, e := range filtered {
		if e.IsCompleted() {
			completed = append(completed, e)
		}
	}

	completionRate := float64(len(completed)) / float64(len(filtered))
	procrastination := procrastinationScore(completed)
	peakHours := peakHourBuckets(completed)
	consistency := consistencyScore(completed, window)

	productivity := clamp01(completionRate*weights.Urgency +
		(1-procrastination)*weights.Importance +
		consistency*weights.Effort)

	report := &domain.ProductivityReport{
		WindowStart:          window.Start,
		WindowEnd:            window.End,
		SampleSize:           len(filtered),
		CompletionRate:       completionRate,
		ProductivityScore:    productivity,
		ProcrastinationScore: procrastination,
		ConsistencyScore:     consistency,
		PeakHours:            peakHours,
	}
	report.Recommendations = recommendations(report)

	if len(filtered) > 0 {
		report.UserID = filtered[0].UserID.String()
	}

	return report, nil
}

// Recommend is a pure projection of a previously computed report.
func (a *PatternAnalyzer) Recommend(report *domain.ProductivityReport) []string {
	if report == nil {
		return nil
	}
	return report.Recommendations
}

// procrastinationScore is the fraction of completed tasks finished in the
// final 20% of the time available before their deadline. Tasks without a
// deadline are never flagged.
func procrastinationScore(completed []domain.TaskEvent) float64 {
	if len(completed) == 0 {
		return 0
	}

	flagged := 0
	for _, e := range completed {
		if e.DueDate == nil || !e.DueDate.After(e.CreatedAt) {
			continue
		}
		available := e.DueDate.Sub(e.CreatedAt)
		elapsed := e.CompletedAt.Sub(e.CreatedAt)
		if float64(elapsed)/float64(available) > procrastinationCutoff {
			flagged++
		}
	}
	return float64(flagged) / float64(len(completed))
}

// peakHourBuckets ranks hour-of-day buckets by completion density, ties
// broken by the lower hour, and returns the top three non-empty buckets.
func peakHourBuckets(completed []domain.TaskEvent) []domain.PeakHour {
	if len(completed) == 0 {
		return nil
	}

	counts := make(map[int]int)
	for _, e := range completed {
		counts[e.CompletedAt.Hour()]++
	}

	buckets := make([]domain.PeakHour, 0, len(counts))
	total := float64(len(completed))
	for hour, n := range counts {
		buckets = append(buckets, domain.PeakHour{
			Hour:        hour,
			Completions: n,
			Density:     float64(n) / total,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Completions != buckets[j].Completions {
			return buckets[i].Completions > buckets[j].Completions
		}
		return buckets[i].Hour < buckets[j].Hour
	})

	if len(buckets) > maxPeakHours {
		buckets = buckets[:maxPeakHours]
	}
	return buckets
}

// consistencyScore inverts the coefficient of variation of daily completion
// counts across every calendar day the window spans, zero days included. A
// single-day window has no variance to measure and scores 1.0.
func consistencyScore(completed []domain.TaskEvent, window domain.AnalysisWindow) float64 {
	days := window.Days()
	if days <= 1 {
		return 1.0
	}

	loc := window.Start.Location()
	perDay := make(map[string]int)
	for _, e := range completed {
		perDay[e.CompletedAt.In(loc).Format("2006-01-02")]++
	}

	// A task created in the window can finish after it; only completions
	// landing on one of the window's days feed the statistic.
	total := 0
	counts := make([]float64, days)
	day := time.Date(window.Start.Year(), window.Start.Month(), window.Start.Day(), 0, 0, 0, 0, loc)
	for i := 0; i < days; i++ {
		n := perDay[day.Format("2006-01-02")]
		counts[i] = float64(n)
		total += n
		day = day.AddDate(0, 0, 1)
	}

	mean := float64(total) / float64(days)
	if mean == 0 {
		return 0
	}

	var sumSquares float64
	for _, count := range counts {
		sumSquares += (count - mean) * (count - mean)
	}

	stddev := math.Sqrt(sumSquares / float64(days))
	return clamp01(1 - stddev/mean)
}

// recommendations applies the rule set in fixed priority order, at most one
// string per rule, stopping at the cap.
func recommendations(r *domain.ProductivityReport) []string {
	recs := make([]string, 0, maxRecommendations)

	if r.ProcrastinationScore > 0.5 && len(recs) < maxRecommendations {
		recs = append(recs, "Start tasks earlier: most of your completions land in the final stretch before their deadline. Build in a buffer of at least a day.")
	}
	if len(r.PeakHours) > 0 && len(recs) < maxRecommendations {
		recs = append(recs, peakHourRecommendation(r.PeakHours[0].Hour))
	}
	if r.ConsistencyScore < 0.4 && len(recs) < maxRecommendations {
		recs = append(recs, "Your daily output is uneven. Block a fixed work slot each day to build a steadier rhythm.")
	}
	if r.CompletionRate < 0.6 && len(recs) < maxRecommendations {
		recs = append(recs, "Less than 60% of tasks in this window were completed. Reduce the number of tasks you take on concurrently.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Your work patterns look healthy. Keep doing what you're doing.")
	}
	return recs
}

func peakHourRecommendation(hour int) string {
	return fmt.Sprintf("You complete the most work around %02d:00. Schedule high-priority tasks in that slot.", hour)
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

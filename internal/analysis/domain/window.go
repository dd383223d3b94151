package domain

import (
	"strings"
	"time"
)

// DefaultMinimumSample is the smallest event count a window will analyze.
const DefaultMinimumSample = 5

// NamedRange is a caller-friendly alias for a trailing analysis window.
type NamedRange string

const (
	RangeDay   NamedRange = "day"
	RangeWeek  NamedRange = "week"
	RangeMonth NamedRange = "month"
)

// ParseNamedRange creates a NamedRange from a string.
func ParseNamedRange(s string) (NamedRange, bool) {
	switch NamedRange(strings.ToLower(s)) {
	case RangeDay, RangeWeek, RangeMonth:
		return NamedRange(strings.ToLower(s)), true
	}
	return "", false
}

// AnalysisWindow bounds the events under analysis. An event qualifies when
// Start <= CreatedAt <= End.
type AnalysisWindow struct {
	Start         time.Time
	End           time.Time
	MinimumSample int
}

// NewWindow creates an explicit window with the default sample threshold.
func NewWindow(start, end time.Time) AnalysisWindow {
	return AnalysisWindow{Start: start, End: end, MinimumSample: DefaultMinimumSample}
}

// WindowForRange maps a named range onto a trailing window ending at now:
// day = trailing 24 hours, week = trailing 7 days, month = trailing 30 days.
func WindowForRange(r NamedRange, now time.Time) AnalysisWindow {
	var start time.Time
	switch r {
	case RangeDay:
		start = now.AddDate(0, 0, -1)
	case RangeMonth:
		start = now.AddDate(0, 0, -30)
	default:
		start = now.AddDate(0, 0, -7)
	}
	return NewWindow(start, now)
}

// Contains reports whether a creation timestamp falls inside the window.
func (w AnalysisWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the number of calendar days the window spans, minimum 1.
func (w AnalysisWindow) Days() int {
	start := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, w.Start.Location())
	end := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, w.Start.Location())
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Threshold returns the effective minimum sample size.
func (w AnalysisWindow) Threshold() int {
	if w.MinimumSample <= 0 {
		return DefaultMinimumSample
	}
	return w.MinimumSample
}

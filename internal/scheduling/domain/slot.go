package domain

import "time"

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the interval length.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two intervals share any time.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Workday configures the bounds and rhythm of a working day.
type Workday struct {
	StartHour    int
	EndHour      int
	FocusMinutes int
	BreakMinutes int
}

// DefaultWorkday is a 09:00 to 17:00 day of 90 minute focus blocks with
// 15 minute breaks.
func DefaultWorkday() Workday {
	return Workday{
		StartHour:    9,
		EndHour:      17,
		FocusMinutes: 90,
		BreakMinutes: 15,
	}
}

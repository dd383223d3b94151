// Package services implements scheduling computations: deadline countdowns
// and free focus slot planning.
package services

import (
	"sort"
	"time"

	"github.com/cadencehq/cadence/internal/scheduling/domain"
)

// Countdown describes the distance to a deadline.
type Countdown struct {
	Days    int                 `json:"days"`
	Urgency domain.UrgencyLevel `json:"urgency"`
}

// DateCalculator computes deadline countdowns and available focus slots.
// It is stateless; a single instance serves concurrent callers.
type DateCalculator struct {
	workday domain.Workday
}

// NewDateCalculator creates a calculator for the given working day shape.
func NewDateCalculator(workday domain.Workday) *DateCalculator {
	if workday.StartHour >= workday.EndHour {
		workday = domain.DefaultWorkday()
	}
	if workday.FocusMinutes <= 0 {
		workday.FocusMinutes = domain.DefaultWorkday().FocusMinutes
	}
	if workday.BreakMinutes < 0 {
		workday.BreakMinutes = domain.DefaultWorkday().BreakMinutes
	}
	return &DateCalculator{workday: workday}
}

// DaysUntil returns the whole calendar days from now to the deadline and
// the urgency level that distance implies. Time-of-day is ignored: a
// deadline later today is zero days away.
func (c *DateCalculator) DaysUntil(now, deadline time.Time) Countdown {
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dueDate := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)

	days := int(dueDate.Sub(nowDate).Hours() / 24)
	return Countdown{Days: days, Urgency: domain.UrgencyForDays(days)}
}

// AddDays returns the date n calendar days after the given date. Negative
// n moves backwards.
func (c *DateCalculator) AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// AvailableSlots returns the focus blocks that fit into the working day on
// the given date around the busy intervals. Blocks are the configured focus
// length and consecutive blocks are separated by the configured break.
func (c *DateCalculator) AvailableSlots(date time.Time, busy []domain.Interval) []domain.Interval {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), c.workday.StartHour, 0, 0, 0, date.Location())
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), c.workday.EndHour, 0, 0, 0, date.Location())

	free := c.freeIntervals(dayStart, dayEnd, busy)

	focus := time.Duration(c.workday.FocusMinutes) * time.Minute
	pause := time.Duration(c.workday.BreakMinutes) * time.Minute

	var slots []domain.Interval
	for _, window := range free {
		cursor := window.Start
		for !cursor.Add(focus).After(window.End) {
			slots = append(slots, domain.Interval{Start: cursor, End: cursor.Add(focus)})
			cursor = cursor.Add(focus + pause)
		}
	}
	return slots
}

// freeIntervals subtracts the busy intervals from the working window.
func (c *DateCalculator) freeIntervals(dayStart, dayEnd time.Time, busy []domain.Interval) []domain.Interval {
	clipped := make([]domain.Interval, 0, len(busy))
	for _, b := range busy {
		if !b.Start.Before(dayEnd) || !b.End.After(dayStart) {
			continue
		}
		start, end := b.Start, b.End
		if start.Before(dayStart) {
			start = dayStart
		}
		if end.After(dayEnd) {
			end = dayEnd
		}
		clipped = append(clipped, domain.Interval{Start: start, End: end})
	}
	sort.Slice(clipped, func(i, j int) bool { return clipped[i].Start.Before(clipped[j].Start) })

	var free []domain.Interval
	cursor := dayStart
	for _, b := range clipped {
		if b.Start.After(cursor) {
			free = append(free, domain.Interval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(dayEnd) {
		free = append(free, domain.Interval{Start: cursor, End: dayEnd})
	}
	return free
}

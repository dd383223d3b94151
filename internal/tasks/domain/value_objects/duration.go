package value_objects

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrDurationTooLong = errors.New("duration exceeds maximum allowed")
)

// MaxDuration caps a single task estimate at one working day.
const MaxDuration = 8 * time.Hour

// Duration represents an estimated task duration.
type Duration struct {
	value time.Duration
}

// NewDuration creates a Duration value object.
func NewDuration(d time.Duration) (Duration, error) {
	if d <= 0 {
		return Duration{}, ErrInvalidDuration
	}
	if d > MaxDuration {
		return Duration{}, ErrDurationTooLong
	}
	return Duration{value: d}, nil
}

// DurationFromMinutes creates a Duration from a whole number of minutes.
func DurationFromMinutes(minutes int) (Duration, error) {
	return NewDuration(time.Duration(minutes) * time.Minute)
}

// MustNewDuration creates a Duration or panics on error. Test helper.
func MustNewDuration(d time.Duration) Duration {
	dur, err := NewDuration(d)
	if err != nil {
		panic(err)
	}
	return dur
}

// Minutes returns the duration in whole minutes.
func (d Duration) Minutes() int {
	return int(d.value.Minutes())
}

// Value returns the underlying time.Duration.
func (d Duration) Value() time.Duration {
	return d.value
}

// String returns a human-readable representation such as "1h30m".
func (d Duration) String() string {
	hours := int(d.value.Hours())
	minutes := int(d.value.Minutes()) % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

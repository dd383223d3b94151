package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowForRange(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		rng   NamedRange
		start time.Time
	}{
		{RangeDay, now.AddDate(0, 0, -1)},
		{RangeWeek, now.AddDate(0, 0, -7)},
		{RangeMonth, now.AddDate(0, 0, -30)},
	}

	for _, tt := range tests {
		t.Run(string(tt.rng), func(t *testing.T) {
			w := WindowForRange(tt.rng, now)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, now, w.End)
			assert.Equal(t, DefaultMinimumSample, w.MinimumSample)
		})
	}
}

func TestParseNamedRange(t *testing.T) {
	r, ok := ParseNamedRange("Week")
	require.True(t, ok)
	assert.Equal(t, RangeWeek, r)

	_, ok = ParseNamedRange("fortnight")
	assert.False(t, ok)
}

func TestAnalysisWindow_Contains(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 7, 23, 59, 59, 0, time.UTC)
	w := NewWindow(start, end)

	assert.True(t, w.Contains(start), "start is inclusive")
	assert.True(t, w.Contains(end), "end is inclusive")
	assert.True(t, w.Contains(start.Add(72*time.Hour)))
	assert.False(t, w.Contains(start.Add(-time.Second)))
	assert.False(t, w.Contains(end.Add(time.Second)))
}

func TestAnalysisWindow_Days(t *testing.T) {
	start := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, 1, NewWindow(start, start.Add(2*time.Hour)).Days())
	assert.Equal(t, 7, NewWindow(start, start.AddDate(0, 0, 6)).Days())
	assert.Equal(t, 2, NewWindow(start, start.Add(20*time.Hour)).Days(), "crossing midnight counts both days")
}

func TestAnalysisWindow_Threshold(t *testing.T) {
	w := NewWindow(time.Now(), time.Now())
	assert.Equal(t, DefaultMinimumSample, w.Threshold())

	w.MinimumSample = 12
	assert.Equal(t, 12, w.Threshold())

	w.MinimumSample = -1
	assert.Equal(t, DefaultMinimumSample, w.Threshold())
}

func TestScoreWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultScoreWeights().Validate())
	assert.NoError(t, ScoreWeights{Urgency: 0.5, Importance: 0.3, Effort: 0.2}.Validate())

	err := ScoreWeights{Urgency: 0.3, Importance: 0.3, Effort: 0.3}.Validate()
	require.Error(t, err)

	var cfgErr *InvalidConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.InDelta(t, 0.9, cfgErr.Sum, 1e-9)

	// Rounding noise inside the tolerance is accepted.
	assert.NoError(t, ScoreWeights{Urgency: 0.1 + 0.2, Importance: 0.4, Effort: 0.3}.Validate())
}

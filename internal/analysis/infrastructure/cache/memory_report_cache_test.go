package cache

import (
	"context"
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(userID uuid.UUID) *domain.ProductivityReport {
	return &domain.ProductivityReport{
		UserID:               userID.String(),
		WindowStart:          time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		WindowEnd:            time.Date(2026, 8, 9, 23, 59, 59, 0, time.UTC),
		SampleSize:           12,
		CompletionRate:       0.75,
		ProductivityScore:    0.68,
		ProcrastinationScore: 0.1,
		ConsistencyScore:     0.82,
		PeakHours:            []domain.PeakHour{{Hour: 9, Completions: 4, Density: 0.44}},
		Recommendations:      []string{"Your work patterns look healthy. Keep doing what you're doing."},
	}
}

func TestReportKey(t *testing.T) {
	userID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	key := reportKey(userID, domain.RangeWeek)
	assert.Equal(t, "cadence:report:00000000-0000-0000-0000-000000000001:week", key)
}

func TestMemoryReportCache_SetAndGet(t *testing.T) {
	c := NewMemoryReportCache(time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	_, ok := c.Get(ctx, userID, domain.RangeWeek)
	assert.False(t, ok)

	report := sampleReport(userID)
	c.Set(ctx, userID, domain.RangeWeek, report)

	cached, ok := c.Get(ctx, userID, domain.RangeWeek)
	require.True(t, ok)
	assert.Equal(t, *report, *cached)
}

func TestMemoryReportCache_RangeIsolation(t *testing.T) {
	c := NewMemoryReportCache(time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	c.Set(ctx, userID, domain.RangeWeek, sampleReport(userID))

	_, ok := c.Get(ctx, userID, domain.RangeDay)
	assert.False(t, ok)
	_, ok = c.Get(ctx, uuid.New(), domain.RangeWeek)
	assert.False(t, ok)
}

func TestMemoryReportCache_Expiry(t *testing.T) {
	c := NewMemoryReportCache(time.Minute)
	current := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	ctx := context.Background()
	userID := uuid.New()
	c.Set(ctx, userID, domain.RangeMonth, sampleReport(userID))

	_, ok := c.Get(ctx, userID, domain.RangeMonth)
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = c.Get(ctx, userID, domain.RangeMonth)
	assert.False(t, ok)
}

func TestMemoryReportCache_ReturnsCopy(t *testing.T) {
	c := NewMemoryReportCache(time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	report := sampleReport(userID)
	c.Set(ctx, userID, domain.RangeWeek, report)

	first, ok := c.Get(ctx, userID, domain.RangeWeek)
	require.True(t, ok)
	first.SampleSize = 999

	second, ok := c.Get(ctx, userID, domain.RangeWeek)
	require.True(t, ok)
	assert.Equal(t, 12, second.SampleSize)
}

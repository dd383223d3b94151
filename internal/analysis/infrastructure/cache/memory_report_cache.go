package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
)

type memoryEntry struct {
	report    domain.ProductivityReport
	expiresAt time.Time
}

// MemoryReportCache implements domain.ReportCache in process memory. It is
// the fallback when no Redis endpoint is configured.
type MemoryReportCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryReportCache creates an in-memory report cache.
func NewMemoryReportCache(ttl time.Duration) *MemoryReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &MemoryReportCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached report for a user and range, if present and fresh.
func (c *MemoryReportCache) Get(_ context.Context, userID uuid.UUID, rng domain.NamedRange) (*domain.ProductivityReport, bool) {
	key := reportKey(userID, rng)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	report := entry.report
	return &report, true
}

// Set stores a copy of the report under its user and range key.
func (c *MemoryReportCache) Set(_ context.Context, userID uuid.UUID, rng domain.NamedRange, report *domain.ProductivityReport) {
	if report == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[reportKey(userID, rng)] = memoryEntry{
		report:    *report,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Package cache provides report cache implementations backed by Redis or
// process memory.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// DefaultReportTTL is used when no TTL is configured.
const DefaultReportTTL = 5 * time.Minute

// RedisReportCache implements domain.ReportCache on Redis. All failures are
// soft: a broken cache degrades to recomputation, never to an error.
type RedisReportCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	ttl     time.Duration
	logger  *slog.Logger
}

// NewRedisReportCache creates a Redis-backed report cache.
func NewRedisReportCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "report-cache",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &RedisReportCache{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		ttl:     ttl,
		logger:  logger,
	}
}

// reportKey namespaces cached reports: cadence:report:{user_id}:{range}
func reportKey(userID uuid.UUID, rng domain.NamedRange) string {
	return fmt.Sprintf("cadence:report:%s:%s", userID, rng)
}

// Get returns the cached report for a user and range, if present.
func (c *RedisReportCache) Get(ctx context.Context, userID uuid.UUID, rng domain.NamedRange) (*domain.ProductivityReport, bool) {
	key := reportKey(userID, rng)

	payload, err := c.breaker.Execute(func() ([]byte, error) {
		return c.client.Get(ctx, key).Bytes()
	})
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("report cache read failed", "key", key, "error", err)
		return nil, false
	}

	var report domain.ProductivityReport
	if err := json.Unmarshal(payload, &report); err != nil {
		c.logger.Warn("report cache entry corrupt", "key", key, "error", err)
		return nil, false
	}

	return &report, true
}

// Set stores a report under its user and range key with the configured TTL.
func (c *RedisReportCache) Set(ctx context.Context, userID uuid.UUID, rng domain.NamedRange, report *domain.ProductivityReport) {
	key := reportKey(userID, rng)

	payload, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("report cache encode failed", "key", key, "error", err)
		return
	}

	_, err = c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, key, payload, c.ttl).Err()
	})
	if err != nil {
		c.logger.Warn("report cache write failed", "key", key, "error", err)
	}
}

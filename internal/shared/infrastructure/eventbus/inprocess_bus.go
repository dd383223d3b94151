package eventbus

import (
	"context"
	"log/slog"
	"time"
)

// InProcessBus delivers events synchronously to registered subscribers.
// It is the default when no RabbitMQ endpoint is configured.
type InProcessBus struct {
	registry *Registry
	logger   *slog.Logger
}

// NewInProcessBus creates a synchronous in-memory bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		registry: NewRegistry(logger),
		logger:   logger,
	}
}

// Register adds a subscriber to the bus.
func (b *InProcessBus) Register(subscriber Subscriber) {
	b.registry.Register(subscriber)
}

// Publish dispatches the payload to subscribers in the caller's goroutine.
// Subscriber failures are logged, not returned: local delivery must not
// roll back the command that emitted the event.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	start := time.Now()
	err := b.registry.Dispatch(ctx, routingKey, payload)
	if err != nil {
		b.logger.Error("event dispatch failed",
			"routing_key", routingKey,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil
	}

	b.logger.Debug("event dispatched",
		"routing_key", routingKey,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Close is a no-op.
func (b *InProcessBus) Close() error {
	return nil
}

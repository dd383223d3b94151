// Package eventbus moves domain events between contexts: synchronously in
// process by default, through RabbitMQ when a broker is configured.
package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cadencehq/cadence/internal/shared/domain"
)

// Publisher sends serialized domain events to the bus.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// PublishEvents serializes and publishes a batch of domain events. The
// first failure stops the batch.
func PublishEvents(ctx context.Context, publisher Publisher, events []domain.Event) error {
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if err := publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
			return err
		}
	}
	return nil
}

// NoopPublisher drops every event. Used when eventing is disabled.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the message but doesn't deliver it.
func (p *NoopPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.logger.Debug("noop publish", "routing_key", routingKey, "size", len(payload))
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error {
	return nil
}

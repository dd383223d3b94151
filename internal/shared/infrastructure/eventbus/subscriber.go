package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// Subscriber handles events for the routing keys it declares.
type Subscriber interface {
	// RoutingKeys returns the routing keys this subscriber handles.
	RoutingKeys() []string

	// Handle processes one event payload.
	Handle(ctx context.Context, routingKey string, payload []byte) error
}

// Registry maps routing keys to subscribers and dispatches events to them.
type Registry struct {
	subscribers map[string][]Subscriber
	mu          sync.RWMutex
	logger      *slog.Logger
}

// NewRegistry creates an empty subscriber registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		subscribers: make(map[string][]Subscriber),
		logger:      logger,
	}
}

// Register adds a subscriber for its declared routing keys.
func (r *Registry) Register(subscriber Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range subscriber.RoutingKeys() {
		r.subscribers[key] = append(r.subscribers[key], subscriber)
		r.logger.Debug("registered subscriber", "routing_key", key)
	}
}

// RoutingKeys returns every routing key with at least one subscriber.
func (r *Registry) RoutingKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.subscribers))
	for key := range r.subscribers {
		keys = append(keys, key)
	}
	return keys
}

// Dispatch delivers a payload to every subscriber of its routing key. A
// failing subscriber does not stop the others; the last error is returned.
func (r *Registry) Dispatch(ctx context.Context, routingKey string, payload []byte) error {
	r.mu.RLock()
	subscribers := r.subscribers[routingKey]
	r.mu.RUnlock()

	if len(subscribers) == 0 {
		r.logger.Debug("no subscribers for routing key", "routing_key", routingKey)
		return nil
	}

	var lastErr error
	for _, subscriber := range subscribers {
		if err := subscriber.Handle(ctx, routingKey, payload); err != nil {
			r.logger.Error("subscriber failed to handle event",
				"routing_key", routingKey,
				"error", err,
			)
			lastErr = err
		}
	}
	return lastErr
}

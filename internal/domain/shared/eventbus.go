package shared

import "context"

// EventPublisher publishes domain events for cross-context integration
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventHandler handles domain events of specific types
type EventHandler interface {
	// EventTypes returns the event types this handler subscribes to
	EventTypes() []string
	// Handle processes a single event
	Handle(ctx context.Context, event DomainEvent) error
}

// EventBus combines publishing with handler management
type EventBus interface {
	EventPublisher
	// Subscribe registers a handler. With no explicit event types the
	// handler's own EventTypes are used.
	Subscribe(handler EventHandler, eventTypes ...string)
	// Unsubscribe removes a handler
	Unsubscribe(handler EventHandler)
	// Start starts the event bus
	Start(ctx context.Context) error
	// Stop stops the event bus gracefully
	Stop(ctx context.Context) error
}

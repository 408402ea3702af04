package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
)

// OutboxMessage is a domain event waiting in the outbox, with the ID it is
// published under. Consumers use the ID to discard duplicates, since
// delivery is at least once.
type OutboxMessage struct {
	ID            kernel.UUID
	EventType     string
	AggregateType string
	AggregateID   kernel.UUID
	OccurredAt    time.Time
	Payload       map[string]any
}

// OutboxRepository stores events in the same transaction as the aggregates
// that produced them.
type OutboxRepository interface {
	// Append stores events in order as pending messages.
	Append(ctx context.Context, events ...lifecycle.DomainEvent) error

	// GetPending returns up to limit undispatched messages, oldest first.
	GetPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkDispatched acknowledges messages so they are not relayed again.
	MarkDispatched(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher hands messages to the message broker in order. A returned
// error means none of the messages may be considered delivered.
type EventPublisher interface {
	Publish(ctx context.Context, messages []OutboxMessage) error
}

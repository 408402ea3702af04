package ports

import (
	"context"

	"marketplace/internal/core/domain/model/lifecycle"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction. Events recorded with RecordEvents
// are written to the outbox by Commit, in the same database transaction as
// the aggregate changes.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit appends the recorded events to the outbox and commits.
	Commit(ctx context.Context) error

	// Rollback discards the transaction and the recorded events. It is safe
	// to call after Commit.
	Rollback(ctx context.Context) error

	// RecordEvents queues events produced by aggregate mutations.
	RecordEvents(events ...lifecycle.DomainEvent)

	OpportunityRepository() OpportunityRepository
	ProposalRepository() ProposalRepository
	SourcingEventRepository() SourcingEventRepository
	OutboxRepository() OutboxRepository
}

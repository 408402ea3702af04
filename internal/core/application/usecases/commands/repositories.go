// Package commands contains the operations that change marketplace state.
// Every handler follows the same algorithm: validate the command, load the
// aggregate inside a unit of work, apply one domain operation, save it with
// the loaded version as the expected version, record the emitted events for
// the outbox and commit. Version conflicts are retried from a fresh load.
package commands

import (
	"context"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/core/ports"
)

// Unit of work interfaces narrowed to what each handler touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EventRecorder queues domain events for the outbox written on Commit.
	EventRecorder interface {
		RecordEvents(events ...lifecycle.DomainEvent)
	}

	OpportunityRepoFactory interface {
		OpportunityRepository() ports.OpportunityRepository
	}

	ProposalRepoFactory interface {
		ProposalRepository() ports.ProposalRepository
	}

	SourcingRepoFactory interface {
		SourcingEventRepository() ports.SourcingEventRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OpportunityUoW is used by commands that change only opportunities.
	OpportunityUoW interface {
		TxManager
		EventRecorder
		OpportunityRepoFactory
	}

	OpportunityUoWFactory interface {
		Create() OpportunityUoW
	}

	// ProposalUoW spans proposals and the opportunity they answer.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   opp, err := uow.OpportunityRepository().Get(ctx, cmd.OpportunityID())
	//   submitted, events, err := desk.Submit(opp, draft, now)
	//   err = uow.ProposalRepository().Add(ctx, submitted)
	//   uow.RecordEvents(events...)
	//
	//   err = uow.Commit(ctx)
	ProposalUoW interface {
		TxManager
		EventRecorder
		OpportunityRepoFactory
		ProposalRepoFactory
	}

	ProposalUoWFactory interface {
		Create() ProposalUoW
	}

	// SourcingUoW is used by commands that change sourcing events.
	SourcingUoW interface {
		TxManager
		EventRecorder
		SourcingRepoFactory
	}

	SourcingUoWFactory interface {
		Create() SourcingUoW
	}

	// OutboxUoW is used by the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// PolicyProvider resolves the policy entry for an event type.
// *sourcing.PolicyTable implements it.
type PolicyProvider interface {
	Lookup(t sourcing.EventType) (sourcing.PolicyEntry, error)
}

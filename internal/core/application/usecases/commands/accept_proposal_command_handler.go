package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
)

// AcceptProposalCommandHandler saves the accepted proposal, the awarded
// opportunity and every rejected competitor in one transaction. A conflict
// on any of them retries the whole acceptance.
type AcceptProposalCommandHandler struct {
	uowFactory ProposalUoWFactory
	desk       services.ProposalDesk
	clock      kernel.Clock
	retries    uint64
}

func NewAcceptProposalCommandHandler(
	uowFactory ProposalUoWFactory,
	desk services.ProposalDesk,
	clock kernel.Clock,
) AcceptProposalCommandHandler {
	return AcceptProposalCommandHandler{
		uowFactory: uowFactory,
		desk:       desk,
		clock:      clock,
		retries:    DefaultConflictRetries,
	}
}

func (h AcceptProposalCommandHandler) Handle(
	ctx context.Context,
	command AcceptProposalCommand,
) (result services.Acceptance, err error) {
	ctx, span := startSpan(ctx, "AcceptProposal")
	defer func() { endSpan(span, err) }()

	if err = command.Validate(); err != nil {
		return services.Acceptance{}, err
	}

	err = retryOnConflict(ctx, h.retries, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		winner, err := uow.ProposalRepository().Get(ctx, command.ProposalID())
		if err != nil {
			return err
		}
		opp, err := uow.OpportunityRepository().Get(ctx, winner.OpportunityID())
		if err != nil {
			return err
		}
		competitors, err := uow.ProposalRepository().GetAllByOpportunity(ctx, opp.ID())
		if err != nil {
			return err
		}

		acceptance, err := h.desk.Accept(opp, winner, competitors, h.clock.Now())
		if err != nil {
			return err
		}

		if err := uow.ProposalRepository().Update(ctx, acceptance.Accepted); err != nil {
			return err
		}
		if err := uow.OpportunityRepository().Update(ctx, acceptance.Opportunity); err != nil {
			return err
		}
		for _, rejected := range acceptance.Rejected {
			if err := uow.ProposalRepository().Update(ctx, rejected); err != nil {
				return err
			}
		}
		uow.RecordEvents(acceptance.Events...)

		if err := uow.Commit(ctx); err != nil {
			return err
		}
		result = acceptance
		return nil
	})
	if err != nil {
		return services.Acceptance{}, err
	}

	return result, nil
}

package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/proposal"
)

type ReviseProposalCommandHandler struct {
	uowFactory ProposalUoWFactory
	clock      kernel.Clock
	retries    uint64
}

func NewReviseProposalCommandHandler(uowFactory ProposalUoWFactory, clock kernel.Clock) ReviseProposalCommandHandler {
	return ReviseProposalCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		retries:    DefaultConflictRetries,
	}
}

// Handle edits a draft. Revisions are not status changes and record no
// events.
func (h ReviseProposalCommandHandler) Handle(
	ctx context.Context,
	command ReviseProposalCommand,
) (result *proposal.Proposal, err error) {
	ctx, span := startSpan(ctx, "ReviseProposal")
	defer func() { endSpan(span, err) }()

	if err = command.Validate(); err != nil {
		return nil, err
	}

	err = retryOnConflict(ctx, h.retries, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		p, err := uow.ProposalRepository().Get(ctx, command.ProposalID())
		if err != nil {
			return err
		}

		terms := command.Terms()
		revised, err := p.Revise(terms.Price, terms.DeliveryDays, terms.CoverLetter, h.clock.Now())
		if err != nil {
			return err
		}

		if err := uow.ProposalRepository().Update(ctx, revised); err != nil {
			return err
		}
		if err := uow.Commit(ctx); err != nil {
			return err
		}
		result = revised
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/proposal"
	"marketplace/internal/core/domain/services"
)

type CreateProposalCommandHandler struct {
	uowFactory ProposalUoWFactory
	desk       services.ProposalDesk
	clock      kernel.Clock
}

func NewCreateProposalCommandHandler(
	uowFactory ProposalUoWFactory,
	desk services.ProposalDesk,
	clock kernel.Clock,
) CreateProposalCommandHandler {
	return CreateProposalCommandHandler{
		uowFactory: uowFactory,
		desk:       desk,
		clock:      clock,
	}
}

// Handle stores the proposal. The opportunity must exist; when the command
// asks for submission it must also be accepting proposals.
func (h CreateProposalCommandHandler) Handle(
	ctx context.Context,
	command CreateProposalCommand,
) (result *proposal.Proposal, err error) {
	ctx, span := startSpan(ctx, "CreateProposal")
	defer func() { endSpan(span, err) }()

	if err = command.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	terms := command.Terms()
	draft, err := proposal.NewProposal(
		command.ProposalID(),
		command.OpportunityID(),
		command.CompanyID(),
		terms.Price,
		terms.DeliveryDays,
		terms.CoverLetter,
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	opp, err := uow.OpportunityRepository().Get(ctx, command.OpportunityID())
	if err != nil {
		return nil, err
	}

	result = draft
	if command.Submit() {
		submitted, events, err := h.desk.Submit(opp, draft, now)
		if err != nil {
			return nil, err
		}
		uow.RecordEvents(events...)
		result = submitted
	}

	if err = uow.ProposalRepository().Add(ctx, result); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result.AcknowledgeEvents(), nil
}

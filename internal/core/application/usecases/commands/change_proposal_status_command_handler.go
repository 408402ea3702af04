package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/proposal"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

type ChangeProposalStatusCommandHandler struct {
	uowFactory ProposalUoWFactory
	desk       services.ProposalDesk
	clock      kernel.Clock
	retries    uint64
}

func NewChangeProposalStatusCommandHandler(
	uowFactory ProposalUoWFactory,
	desk services.ProposalDesk,
	clock kernel.Clock,
) ChangeProposalStatusCommandHandler {
	return ChangeProposalStatusCommandHandler{
		uowFactory: uowFactory,
		desk:       desk,
		clock:      clock,
		retries:    DefaultConflictRetries,
	}
}

func (h ChangeProposalStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeProposalStatusCommand,
) (result *proposal.Proposal, err error) {
	ctx, span := startSpan(ctx, "ChangeProposalStatus")
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

		changed, events, err := h.apply(ctx, uow, p, command, h.clock.Now())
		if err != nil {
			return err
		}

		if err := uow.ProposalRepository().Update(ctx, changed); err != nil {
			return err
		}
		uow.RecordEvents(events...)

		if err := uow.Commit(ctx); err != nil {
			return err
		}
		result = changed.AcknowledgeEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h ChangeProposalStatusCommandHandler) apply(
	ctx context.Context,
	uow ProposalUoW,
	p *proposal.Proposal,
	command ChangeProposalStatusCommand,
	now time.Time,
) (*proposal.Proposal, []lifecycle.DomainEvent, error) {
	switch command.Action() {
	case ProposalActionSubmit:
		opp, err := uow.OpportunityRepository().Get(ctx, p.OpportunityID())
		if err != nil {
			return nil, nil, err
		}
		return h.desk.Submit(opp, p, now)
	case ProposalActionStartReview:
		return p.StartReview(now)
	case ProposalActionReject:
		return p.Reject(command.Reason(), now)
	case ProposalActionWithdraw:
		return p.Withdraw(command.Reason(), now)
	default:
		return nil, nil, errs.NewValueIsInvalidError("action")
	}
}

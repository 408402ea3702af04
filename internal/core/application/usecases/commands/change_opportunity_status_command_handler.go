package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/opportunity"
	"marketplace/internal/pkg/errs"
)

type ChangeOpportunityStatusCommandHandler struct {
	uowFactory OpportunityUoWFactory
	clock      kernel.Clock
	retries    uint64
}

func NewChangeOpportunityStatusCommandHandler(
	uowFactory OpportunityUoWFactory,
	clock kernel.Clock,
) ChangeOpportunityStatusCommandHandler {
	return ChangeOpportunityStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		retries:    DefaultConflictRetries,
	}
}

// Handle applies the action and returns the saved opportunity.
func (h ChangeOpportunityStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeOpportunityStatusCommand,
) (result *opportunity.Opportunity, err error) {
	ctx, span := startSpan(ctx, "ChangeOpportunityStatus")
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

		opp, err := uow.OpportunityRepository().Get(ctx, command.OpportunityID())
		if err != nil {
			return err
		}

		changed, events, err := applyOpportunityAction(opp, command, h.clock.Now())
		if err != nil {
			return err
		}

		if err := uow.OpportunityRepository().Update(ctx, changed); err != nil {
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

func applyOpportunityAction(
	opp *opportunity.Opportunity,
	command ChangeOpportunityStatusCommand,
	now time.Time,
) (*opportunity.Opportunity, []lifecycle.DomainEvent, error) {
	switch command.Action() {
	case OpportunityActionPublish:
		return opp.Publish(now)
	case OpportunityActionStartReview:
		return opp.StartReview(now)
	case OpportunityActionReopen:
		return opp.ReopenForProposals(now)
	case OpportunityActionComplete:
		return opp.Complete(now)
	case OpportunityActionClose:
		return opp.Close(now)
	case OpportunityActionCancel:
		return opp.Cancel(command.Reason(), now)
	case OpportunityActionExpire:
		return opp.Expire(now)
	default:
		return nil, nil, errs.NewValueIsInvalidError("action")
	}
}

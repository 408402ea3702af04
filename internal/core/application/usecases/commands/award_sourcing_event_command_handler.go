package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/core/domain/services"
)

type AwardSourcingEventCommandHandler struct {
	uowFactory SourcingUoWFactory
	policies   PolicyProvider
	evaluator  services.BidEvaluator
	clock      kernel.Clock
	retries    uint64
}

func NewAwardSourcingEventCommandHandler(
	uowFactory SourcingUoWFactory,
	policies PolicyProvider,
	evaluator services.BidEvaluator,
	clock kernel.Clock,
) AwardSourcingEventCommandHandler {
	return AwardSourcingEventCommandHandler{
		uowFactory: uowFactory,
		policies:   policies,
		evaluator:  evaluator,
		clock:      clock,
		retries:    DefaultConflictRetries,
	}
}

func (h AwardSourcingEventCommandHandler) Handle(
	ctx context.Context,
	command AwardSourcingEventCommand,
) (result *sourcing.Event, err error) {
	ctx, span := startSpan(ctx, "AwardSourcingEvent")
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

		ev, err := uow.SourcingEventRepository().Get(ctx, command.EventID())
		if err != nil {
			return err
		}

		winner, err := h.winner(ev, command)
		if err != nil {
			return err
		}

		awarded, events, err := ev.Award(winner, h.clock.Now())
		if err != nil {
			return err
		}

		if err := uow.SourcingEventRepository().Update(ctx, awarded); err != nil {
			return err
		}
		uow.RecordEvents(events...)

		if err := uow.Commit(ctx); err != nil {
			return err
		}
		result = awarded.AcknowledgeEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h AwardSourcingEventCommandHandler) winner(
	ev *sourcing.Event,
	command AwardSourcingEventCommand,
) (kernel.UUID, error) {
	if supplierID, ok := command.SupplierID(); ok {
		return supplierID, nil
	}

	policy, err := h.policies.Lookup(ev.Type())
	if err != nil {
		return kernel.UUID{}, err
	}
	best, err := h.evaluator.Best(policy.EvaluationWeights(), command.Bids())
	if err != nil {
		return kernel.UUID{}, err
	}
	return best.SupplierID, nil
}

package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sourcing"
)

type StartDueEvaluationsCommandHandler struct {
	uowFactory SourcingUoWFactory
	clock      kernel.Clock
	retries    uint64
}

func NewStartDueEvaluationsCommandHandler(
	uowFactory SourcingUoWFactory,
	clock kernel.Clock,
) StartDueEvaluationsCommandHandler {
	return StartDueEvaluationsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		retries:    DefaultConflictRetries,
	}
}

// Handle returns how many events entered evaluation.
func (h StartDueEvaluationsCommandHandler) Handle(
	ctx context.Context,
	command StartDueEvaluationsCommand,
) (started int, err error) {
	ctx, span := startSpan(ctx, "StartDueEvaluations")
	defer func() { endSpan(span, err) }()

	if err = command.Validate(); err != nil {
		return 0, err
	}

	due, err := h.findDue(ctx, command.Limit())
	if err != nil {
		return 0, err
	}

	var failures []error
	for _, ev := range due {
		ok, err := h.startEvaluation(ctx, ev.ID())
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if ok {
			started++
		}
	}

	return started, errors.Join(failures...)
}

func (h StartDueEvaluationsCommandHandler) findDue(ctx context.Context, limit int) ([]*sourcing.Event, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.SourcingEventRepository().GetAllDueForEvaluation(ctx, h.clock.Now(), limit)
}

func (h StartDueEvaluationsCommandHandler) startEvaluation(ctx context.Context, id kernel.UUID) (bool, error) {
	changed := false
	err := retryOnConflict(ctx, h.retries, func() error {
		changed = false

		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		ev, err := uow.SourcingEventRepository().Get(ctx, id)
		if err != nil {
			return err
		}
		now := h.clock.Now()
		if !ev.IsDueForEvaluation(now) {
			return nil
		}

		evaluating, events, err := ev.StartEvaluation(now)
		if err != nil {
			return err
		}
		if err := uow.SourcingEventRepository().Update(ctx, evaluating); err != nil {
			return err
		}
		uow.RecordEvents(events...)

		if err := uow.Commit(ctx); err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/pkg/errs"
)

type ChangeSourcingEventStatusCommandHandler struct {
	uowFactory SourcingUoWFactory
	policies   PolicyProvider
	clock      kernel.Clock
	retries    uint64
}

func NewChangeSourcingEventStatusCommandHandler(
	uowFactory SourcingUoWFactory,
	policies PolicyProvider,
	clock kernel.Clock,
) ChangeSourcingEventStatusCommandHandler {
	return ChangeSourcingEventStatusCommandHandler{
		uowFactory: uowFactory,
		policies:   policies,
		clock:      clock,
		retries:    DefaultConflictRetries,
	}
}

func (h ChangeSourcingEventStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeSourcingEventStatusCommand,
) (result *sourcing.Event, err error) {
	ctx, span := startSpan(ctx, "ChangeSourcingEventStatus")
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
		policy, err := h.policies.Lookup(ev.Type())
		if err != nil {
			return err
		}

		changed, events, err := applySourcingAction(ev, policy, command, h.clock.Now())
		if err != nil {
			return err
		}

		if err := uow.SourcingEventRepository().Update(ctx, changed); err != nil {
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

func applySourcingAction(
	ev *sourcing.Event,
	policy sourcing.PolicyEntry,
	command ChangeSourcingEventStatusCommand,
	now time.Time,
) (*sourcing.Event, []lifecycle.DomainEvent, error) {
	switch command.Action() {
	case SourcingActionPublish:
		return ev.Publish(policy, now)
	case SourcingActionOpen:
		return ev.Open(now)
	case SourcingActionExtendDeadline:
		return ev.ExtendDeadline(policy, now)
	case SourcingActionStartEvaluation:
		return ev.StartEvaluation(now)
	case SourcingActionNextRound:
		return ev.StartNextRound(policy, now)
	case SourcingActionClose:
		return ev.Close(now)
	case SourcingActionCancel:
		return ev.Cancel(command.Reason(), now)
	default:
		return nil, nil, errs.NewValueIsInvalidError("action")
	}
}

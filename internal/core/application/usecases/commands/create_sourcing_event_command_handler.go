package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sourcing"
)

type CreateSourcingEventCommandHandler struct {
	uowFactory SourcingUoWFactory
	policies   PolicyProvider
	clock      kernel.Clock
}

func NewCreateSourcingEventCommandHandler(
	uowFactory SourcingUoWFactory,
	policies PolicyProvider,
	clock kernel.Clock,
) CreateSourcingEventCommandHandler {
	return CreateSourcingEventCommandHandler{
		uowFactory: uowFactory,
		policies:   policies,
		clock:      clock,
	}
}

// Handle stores a Draft event. Policy rules other than the event type being
// known are checked on publish.
func (h CreateSourcingEventCommandHandler) Handle(
	ctx context.Context,
	command CreateSourcingEventCommand,
) (result *sourcing.Event, err error) {
	ctx, span := startSpan(ctx, "CreateSourcingEvent")
	defer func() { endSpan(span, err) }()

	if err = command.Validate(); err != nil {
		return nil, err
	}

	policy, err := h.policies.Lookup(command.EventType())
	if err != nil {
		return nil, err
	}

	duration := command.DurationDays()
	if duration == 0 {
		duration = policy.DefaultDurationDays()
	}

	ev, err := sourcing.NewEvent(
		command.EventID(),
		command.OwnerID(),
		command.EventType(),
		command.Title(),
		command.Description(),
		command.Visibility(),
		command.InvitedSuppliers(),
		duration,
		h.clock.Now(),
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

	if err = uow.SourcingEventRepository().Add(ctx, ev); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ev, nil
}

package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// DispatchOutboxCommandHandler publishes pending outbox messages and marks
// them dispatched. Messages are marked only after the publisher accepted
// them, so a crash in between publishes them again on the next run.
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock kernel.Clock,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle returns how many messages were dispatched.
func (h DispatchOutboxCommandHandler) Handle(
	ctx context.Context,
	command DispatchOutboxCommand,
) (dispatched int, err error) {
	ctx, span := startSpan(ctx, "DispatchOutbox")
	defer func() { endSpan(span, err) }()

	if err = command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OutboxRepository().GetPending(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, pending); err != nil {
		return 0, fmt.Errorf("publish outbox messages: %w", err)
	}

	ids := make([]kernel.UUID, 0, len(pending))
	for _, m := range pending {
		ids = append(ids, m.ID)
	}
	if err = uow.OutboxRepository().MarkDispatched(ctx, ids, h.clock.Now()); err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(pending), nil
}

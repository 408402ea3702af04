package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/opportunity"
)

// CreateOpportunityCommandHandler stores new Draft opportunities.
type CreateOpportunityCommandHandler struct {
	uowFactory OpportunityUoWFactory
	clock      kernel.Clock
}

func NewCreateOpportunityCommandHandler(uowFactory OpportunityUoWFactory, clock kernel.Clock) CreateOpportunityCommandHandler {
	return CreateOpportunityCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle creates the opportunity. Creation emits no domain events.
func (h CreateOpportunityCommandHandler) Handle(ctx context.Context, command CreateOpportunityCommand) (err error) {
	ctx, span := startSpan(ctx, "CreateOpportunity")
	defer func() { endSpan(span, err) }()

	if err = command.Validate(); err != nil {
		return err
	}

	opp, err := opportunity.NewOpportunity(
		command.OpportunityID(),
		command.OwnerID(),
		command.Title(),
		command.Description(),
		command.Budget(),
		command.Deadline(),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OpportunityRepository().Add(ctx, opp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOpportunityCommandIsNotConstructed = errors.New(
	"CreateOpportunityCommand must be created via NewCreateOpportunityCommand constructor",
)

// CreateOpportunityCommand registers a Draft opportunity. The caller picks
// the ID so the request can be retried safely.
//
// Example:
//
//	budget, _ := kernel.NewMoney(500_000, "EUR")
//	cmd, err := NewCreateOpportunityCommand(kernel.NewUUID(), ownerID,
//	    "Kitchen renovation", "Replace cabinets", budget, deadline)
//	if err != nil {
//	    return fmt.Errorf("invalid opportunity: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOpportunityCommand struct { //nolint:recvcheck //using for validation
	opportunityID kernel.UUID
	ownerID       kernel.UUID
	title         string
	description   string
	budget        kernel.Money
	deadline      time.Time

	guard guard.ConstructorGuard
}

func NewCreateOpportunityCommand(
	opportunityID, ownerID kernel.UUID,
	title, description string,
	budget kernel.Money,
	deadline time.Time,
) (CreateOpportunityCommand, error) {
	cmd := CreateOpportunityCommand{
		title:       title,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOpportunityID(opportunityID),
		cmd.setOwnerID(ownerID),
		cmd.setBudget(budget),
		cmd.setDeadline(deadline),
	); err != nil {
		return CreateOpportunityCommand{}, err
	}

	return cmd, nil
}

func (c CreateOpportunityCommand) Validate() error {
	return c.guard.Validate(ErrCreateOpportunityCommandIsNotConstructed)
}

func (c CreateOpportunityCommand) OpportunityID() kernel.UUID {
	return c.opportunityID
}

func (c CreateOpportunityCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

func (c CreateOpportunityCommand) Title() string {
	return c.title
}

func (c CreateOpportunityCommand) Description() string {
	return c.description
}

func (c CreateOpportunityCommand) Budget() kernel.Money {
	return c.budget
}

func (c CreateOpportunityCommand) Deadline() time.Time {
	return c.deadline
}

func (c *CreateOpportunityCommand) setOpportunityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.opportunityID = id
	return nil
}

func (c *CreateOpportunityCommand) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.ownerID = id
	return nil
}

func (c *CreateOpportunityCommand) setBudget(budget kernel.Money) error {
	if err := budget.Validate(); err != nil {
		return err
	}
	c.budget = budget
	return nil
}

func (c *CreateOpportunityCommand) setDeadline(deadline time.Time) error {
	if deadline.IsZero() {
		return errs.NewValueIsRequiredError("deadline")
	}
	c.deadline = deadline
	return nil
}

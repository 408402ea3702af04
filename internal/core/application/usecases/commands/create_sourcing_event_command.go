package commands

import (
	"errors"
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateSourcingEventCommandIsNotConstructed = errors.New(
	"CreateSourcingEventCommand must be created via NewCreateSourcingEventCommand constructor",
)

// CreateSourcingEventCommand registers a Draft sourcing event. A zero
// DurationDays means the default duration of the event type's policy.
type CreateSourcingEventCommand struct { //nolint:recvcheck //using for validation
	eventID          kernel.UUID
	ownerID          kernel.UUID
	eventType        sourcing.EventType
	title            string
	description      string
	visibility       sourcing.Visibility
	invitedSuppliers []kernel.UUID
	durationDays     int

	guard guard.ConstructorGuard
}

func NewCreateSourcingEventCommand(
	eventID, ownerID kernel.UUID,
	eventType sourcing.EventType,
	title, description string,
	visibility sourcing.Visibility,
	invitedSuppliers []kernel.UUID,
	durationDays int,
) (CreateSourcingEventCommand, error) {
	var durationErr error
	if durationDays < 0 {
		durationErr = errs.NewValueIsInvalidError("durationDays")
	}

	if err := errors.Join(
		requiredID("eventId", eventID),
		requiredID("ownerId", ownerID),
		eventType.Validate(),
		visibility.Validate(),
		durationErr,
	); err != nil {
		return CreateSourcingEventCommand{}, err
	}

	return CreateSourcingEventCommand{
		eventID:          eventID,
		ownerID:          ownerID,
		eventType:        eventType,
		title:            title,
		description:      description,
		visibility:       visibility,
		invitedSuppliers: slices.Clone(invitedSuppliers),
		durationDays:     durationDays,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CreateSourcingEventCommand) Validate() error {
	return c.guard.Validate(ErrCreateSourcingEventCommandIsNotConstructed)
}

func (c CreateSourcingEventCommand) EventID() kernel.UUID { return c.eventID }
func (c CreateSourcingEventCommand) OwnerID() kernel.UUID { return c.ownerID }
func (c CreateSourcingEventCommand) EventType() sourcing.EventType { return c.eventType }
func (c CreateSourcingEventCommand) Title() string { return c.title }
func (c CreateSourcingEventCommand) Description() string { return c.description }
func (c CreateSourcingEventCommand) Visibility() sourcing.Visibility { return c.visibility }
func (c CreateSourcingEventCommand) InvitedSuppliers() []kernel.UUID { return slices.Clone(c.invitedSuppliers) }
func (c CreateSourcingEventCommand) DurationDays() int { return c.durationDays }

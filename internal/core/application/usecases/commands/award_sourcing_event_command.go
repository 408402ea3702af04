package commands

import (
	"errors"
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAwardSourcingEventCommandIsNotConstructed = errors.New(
	"AwardSourcingEventCommand must be created via NewAwardSourcingEventCommand constructor",
)

// AwardSourcingEventCommand awards an event in evaluation either to a named
// supplier or to the best of the given bids, ranked with the evaluation
// weights of the event type's policy.
type AwardSourcingEventCommand struct { //nolint:recvcheck //using for validation
	eventID    kernel.UUID
	supplierID kernel.UUID
	bids       []services.Bid

	guard guard.ConstructorGuard
}

// NewAwardSourcingEventCommand needs either a supplierID or at least one bid.
// A constructed supplierID takes precedence over bids.
func NewAwardSourcingEventCommand(
	eventID kernel.UUID,
	supplierID kernel.UUID,
	bids []services.Bid,
) (AwardSourcingEventCommand, error) {
	if err := requiredID("eventId", eventID); err != nil {
		return AwardSourcingEventCommand{}, err
	}
	if supplierID.Validate() != nil && len(bids) == 0 {
		return AwardSourcingEventCommand{}, errs.NewValueIsRequiredError("supplierId or bids")
	}

	return AwardSourcingEventCommand{
		eventID:    eventID,
		supplierID: supplierID,
		bids:       slices.Clone(bids),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AwardSourcingEventCommand) Validate() error {
	return c.guard.Validate(ErrAwardSourcingEventCommandIsNotConstructed)
}

func (c AwardSourcingEventCommand) EventID() kernel.UUID {
	return c.eventID
}

// SupplierID reports false when the winner is to be picked from Bids.
func (c AwardSourcingEventCommand) SupplierID() (kernel.UUID, bool) {
	return c.supplierID, c.supplierID.Validate() == nil
}

func (c AwardSourcingEventCommand) Bids() []services.Bid {
	return slices.Clone(c.bids)
}

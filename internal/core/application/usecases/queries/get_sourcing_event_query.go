package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetSourcingEventQueryIsNotConstructed = errors.New(
		"GetSourcingEventQuery must be created via NewGetSourcingEventQuery constructor",
	)
)

type GetSourcingEventQuery struct {
	eventID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetSourcingEventQuery(eventID kernel.UUID) (GetSourcingEventQuery, error) {
	if err := eventID.Validate(); err != nil {
		return GetSourcingEventQuery{}, errs.NewValueIsRequiredErrorWithCause("eventID", err)
	}

	return GetSourcingEventQuery{
		eventID: eventID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetSourcingEventQuery) EventID() kernel.UUID {
	return q.eventID
}

func (q GetSourcingEventQuery) Validate() error {
	return q.guard.Validate(ErrGetSourcingEventQueryIsNotConstructed)
}

// SourcingEventView is the read model of a sourcing event. StartsAt and
// Deadline stay nil until the event is published.
type SourcingEventView struct {
	ID                 kernel.UUID
	OwnerID            kernel.UUID
	Type               string
	Title              string
	Description        string
	Visibility         string
	InvitedSuppliers   []kernel.UUID
	DurationDays       int
	Status             string
	Round              int
	Extensions         int
	StartsAt           *time.Time
	Deadline           *time.Time
	AwardedSupplierID  *kernel.UUID
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Package queries contains read operations. Handlers query the tables with
// plain SQL and return read models shaped for the HTTP layer rather than
// aggregates.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOpportunityQueryIsNotConstructed = errors.New(
		"GetOpportunityQuery must be created via NewGetOpportunityQuery constructor",
	)
)

// GetOpportunityQuery fetches one opportunity together with the number of
// proposals companies have submitted against it.
//
// Example:
//
//	query, err := NewGetOpportunityQuery(id)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOpportunityQuery struct {
	opportunityID kernel.UUID
	guard         guard.ConstructorGuard
}

func NewGetOpportunityQuery(opportunityID kernel.UUID) (GetOpportunityQuery, error) {
	if err := opportunityID.Validate(); err != nil {
		return GetOpportunityQuery{}, errs.NewValueIsRequiredErrorWithCause("opportunityID", err)
	}

	return GetOpportunityQuery{
		opportunityID: opportunityID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetOpportunityQuery) OpportunityID() kernel.UUID {
	return q.opportunityID
}

func (q GetOpportunityQuery) Validate() error {
	return q.guard.Validate(ErrGetOpportunityQueryIsNotConstructed)
}

// OpportunityView is the read model of an opportunity. Status holds the
// status name.
type OpportunityView struct {
	ID                 kernel.UUID
	OwnerID            kernel.UUID
	Title              string
	Description        string
	Budget             kernel.Money
	Deadline           time.Time
	Status             string
	AwardedProposalID  *kernel.UUID
	CancellationReason string
	ProposalCount      int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrListProposalsByOpportunityQueryIsNotConstructed = errors.New(
		"ListProposalsByOpportunityQuery must be created via NewListProposalsByOpportunityQuery constructor",
	)
)

// ListProposalsByOpportunityQuery lists the proposals made against one
// opportunity in creation order. Drafts are left out unless includeDrafts
// is set, since they are private to the company writing them.
type ListProposalsByOpportunityQuery struct {
	opportunityID kernel.UUID
	includeDrafts bool
	guard         guard.ConstructorGuard
}

func NewListProposalsByOpportunityQuery(
	opportunityID kernel.UUID,
	includeDrafts bool,
) (ListProposalsByOpportunityQuery, error) {
	if err := opportunityID.Validate(); err != nil {
		return ListProposalsByOpportunityQuery{}, errs.NewValueIsRequiredErrorWithCause("opportunityID", err)
	}

	return ListProposalsByOpportunityQuery{
		opportunityID: opportunityID,
		includeDrafts: includeDrafts,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q ListProposalsByOpportunityQuery) OpportunityID() kernel.UUID {
	return q.opportunityID
}

func (q ListProposalsByOpportunityQuery) IncludeDrafts() bool {
	return q.includeDrafts
}

func (q ListProposalsByOpportunityQuery) Validate() error {
	return q.guard.Validate(ErrListProposalsByOpportunityQueryIsNotConstructed)
}

// ProposalView is the read model of a proposal. SubmittedAt is nil for
// drafts.
type ProposalView struct {
	ID            kernel.UUID
	OpportunityID kernel.UUID
	CompanyID     kernel.UUID
	Price         kernel.Money
	DeliveryDays  int
	CoverLetter   string
	Status        string
	Reason        string
	SubmittedAt   *time.Time
	CreatedAt     time.Time
}

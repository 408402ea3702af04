package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateProposalCommandIsNotConstructed = errors.New(
	"CreateProposalCommand must be created via NewCreateProposalCommand constructor",
)

// ProposalTerms are the commercial terms a company offers.
type ProposalTerms struct {
	Price        kernel.Money
	DeliveryDays int
	CoverLetter  string
}

// CreateProposalCommand stores a Draft proposal for an opportunity. With
// submit set the draft is submitted in the same transaction.
type CreateProposalCommand struct { //nolint:recvcheck //using for validation
	proposalID    kernel.UUID
	opportunityID kernel.UUID
	companyID     kernel.UUID
	terms         ProposalTerms
	submit        bool

	guard guard.ConstructorGuard
}

func NewCreateProposalCommand(
	proposalID, opportunityID, companyID kernel.UUID,
	terms ProposalTerms,
	submit bool,
) (CreateProposalCommand, error) {
	if err := errors.Join(
		requiredID("proposalId", proposalID),
		requiredID("opportunityId", opportunityID),
		requiredID("companyId", companyID),
		terms.Price.Validate(),
	); err != nil {
		return CreateProposalCommand{}, err
	}

	return CreateProposalCommand{
		proposalID:    proposalID,
		opportunityID: opportunityID,
		companyID:     companyID,
		terms:         terms,
		submit:        submit,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProposalCommand) Validate() error {
	return c.guard.Validate(ErrCreateProposalCommandIsNotConstructed)
}

func (c CreateProposalCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

func (c CreateProposalCommand) OpportunityID() kernel.UUID {
	return c.opportunityID
}

func (c CreateProposalCommand) CompanyID() kernel.UUID {
	return c.companyID
}

func (c CreateProposalCommand) Terms() ProposalTerms {
	return c.terms
}

func (c CreateProposalCommand) Submit() bool {
	return c.submit
}

func requiredID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}

package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrReviseProposalCommandIsNotConstructed = errors.New(
	"ReviseProposalCommand must be created via NewReviseProposalCommand constructor",
)

// ReviseProposalCommand replaces the terms of a Draft proposal.
type ReviseProposalCommand struct { //nolint:recvcheck //using for validation
	proposalID kernel.UUID
	terms      ProposalTerms

	guard guard.ConstructorGuard
}

func NewReviseProposalCommand(proposalID kernel.UUID, terms ProposalTerms) (ReviseProposalCommand, error) {
	if err := errors.Join(
		requiredID("proposalId", proposalID),
		terms.Price.Validate(),
	); err != nil {
		return ReviseProposalCommand{}, err
	}

	return ReviseProposalCommand{
		proposalID: proposalID,
		terms:      terms,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReviseProposalCommand) Validate() error {
	return c.guard.Validate(ErrReviseProposalCommandIsNotConstructed)
}

func (c ReviseProposalCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

func (c ReviseProposalCommand) Terms() ProposalTerms {
	return c.terms
}

package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAcceptProposalCommandIsNotConstructed = errors.New(
	"AcceptProposalCommand must be created via NewAcceptProposalCommand constructor",
)

// AcceptProposalCommand accepts a proposal and awards its opportunity.
type AcceptProposalCommand struct { //nolint:recvcheck //using for validation
	proposalID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptProposalCommand(proposalID kernel.UUID) (AcceptProposalCommand, error) {
	if err := requiredID("proposalId", proposalID); err != nil {
		return AcceptProposalCommand{}, err
	}

	return AcceptProposalCommand{
		proposalID: proposalID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptProposalCommand) Validate() error {
	return c.guard.Validate(ErrAcceptProposalCommandIsNotConstructed)
}

func (c AcceptProposalCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

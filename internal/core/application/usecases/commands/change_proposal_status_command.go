package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrChangeProposalStatusCommandIsNotConstructed = errors.New(
	"ChangeProposalStatusCommand must be created via NewChangeProposalStatusCommand constructor",
)

// ProposalAction names a proposal status change. Acceptance is handled by
// AcceptProposalCommand.
type ProposalAction string

const (
	ProposalActionSubmit      ProposalAction = "submit"
	ProposalActionStartReview ProposalAction = "start-review"
	ProposalActionReject      ProposalAction = "reject"
	ProposalActionWithdraw    ProposalAction = "withdraw"
)

func ParseProposalAction(name string) (ProposalAction, error) {
	action := ProposalAction(strings.ToLower(strings.TrimSpace(name)))
	switch action {
	case ProposalActionSubmit, ProposalActionStartReview, ProposalActionReject, ProposalActionWithdraw:
		return action, nil
	}
	return "", errs.NewValueIsInvalidError("action")
}

type ChangeProposalStatusCommand struct { //nolint:recvcheck //using for validation
	proposalID kernel.UUID
	action     ProposalAction
	reason     string

	guard guard.ConstructorGuard
}

func NewChangeProposalStatusCommand(
	proposalID kernel.UUID,
	action ProposalAction,
	reason string,
) (ChangeProposalStatusCommand, error) {
	if err := requiredID("proposalId", proposalID); err != nil {
		return ChangeProposalStatusCommand{}, err
	}
	parsed, err := ParseProposalAction(string(action))
	if err != nil {
		return ChangeProposalStatusCommand{}, err
	}

	return ChangeProposalStatusCommand{
		proposalID: proposalID,
		action:     parsed,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeProposalStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeProposalStatusCommandIsNotConstructed)
}

func (c ChangeProposalStatusCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

func (c ChangeProposalStatusCommand) Action() ProposalAction {
	return c.action
}

func (c ChangeProposalStatusCommand) Reason() string {
	return c.reason
}

package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrChangeOpportunityStatusCommandIsNotConstructed = errors.New(
	"ChangeOpportunityStatusCommand must be created via NewChangeOpportunityStatusCommand constructor",
)

// OpportunityAction names a status change requested by a client.
type OpportunityAction string

const (
	OpportunityActionPublish     OpportunityAction = "publish"
	OpportunityActionStartReview OpportunityAction = "start-review"
	OpportunityActionReopen      OpportunityAction = "reopen"
	OpportunityActionComplete    OpportunityAction = "complete"
	OpportunityActionClose       OpportunityAction = "close"
	OpportunityActionCancel      OpportunityAction = "cancel"
	OpportunityActionExpire      OpportunityAction = "expire"
)

// ParseOpportunityAction accepts action names case-insensitively.
func ParseOpportunityAction(name string) (OpportunityAction, error) {
	action := OpportunityAction(strings.ToLower(strings.TrimSpace(name)))
	switch action {
	case OpportunityActionPublish, OpportunityActionStartReview, OpportunityActionReopen,
		OpportunityActionComplete, OpportunityActionClose, OpportunityActionCancel,
		OpportunityActionExpire:
		return action, nil
	}
	return "", errs.NewValueIsInvalidError("action")
}

// ChangeOpportunityStatusCommand moves an opportunity along its lifecycle.
// Awarding goes through AcceptProposalCommand instead, since it needs the
// winning proposal.
type ChangeOpportunityStatusCommand struct { //nolint:recvcheck //using for validation
	opportunityID kernel.UUID
	action        OpportunityAction
	reason        string

	guard guard.ConstructorGuard
}

func NewChangeOpportunityStatusCommand(
	opportunityID kernel.UUID,
	action OpportunityAction,
	reason string,
) (ChangeOpportunityStatusCommand, error) {
	if err := opportunityID.Validate(); err != nil {
		return ChangeOpportunityStatusCommand{}, err
	}
	parsed, err := ParseOpportunityAction(string(action))
	if err != nil {
		return ChangeOpportunityStatusCommand{}, err
	}

	return ChangeOpportunityStatusCommand{
		opportunityID: opportunityID,
		action:        parsed,
		reason:        reason,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOpportunityStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOpportunityStatusCommandIsNotConstructed)
}

func (c ChangeOpportunityStatusCommand) OpportunityID() kernel.UUID {
	return c.opportunityID
}

func (c ChangeOpportunityStatusCommand) Action() OpportunityAction {
	return c.action
}

// Reason is only used by the cancel action.
func (c ChangeOpportunityStatusCommand) Reason() string {
	return c.reason
}

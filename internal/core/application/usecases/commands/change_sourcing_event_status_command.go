package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrChangeSourcingEventStatusCommandIsNotConstructed = errors.New(
	"ChangeSourcingEventStatusCommand must be created via NewChangeSourcingEventStatusCommand constructor",
)

// SourcingAction names a sourcing event change. Awarding is handled by
// AwardSourcingEventCommand.
type SourcingAction string

const (
	SourcingActionPublish         SourcingAction = "publish"
	SourcingActionOpen            SourcingAction = "open"
	SourcingActionExtendDeadline  SourcingAction = "extend-deadline"
	SourcingActionStartEvaluation SourcingAction = "start-evaluation"
	SourcingActionNextRound       SourcingAction = "next-round"
	SourcingActionClose           SourcingAction = "close"
	SourcingActionCancel          SourcingAction = "cancel"
)

func ParseSourcingAction(name string) (SourcingAction, error) {
	action := SourcingAction(strings.ToLower(strings.TrimSpace(name)))
	switch action {
	case SourcingActionPublish, SourcingActionOpen, SourcingActionExtendDeadline,
		SourcingActionStartEvaluation, SourcingActionNextRound, SourcingActionClose,
		SourcingActionCancel:
		return action, nil
	}
	return "", errs.NewValueIsInvalidError("action")
}

type ChangeSourcingEventStatusCommand struct { //nolint:recvcheck //using for validation
	eventID kernel.UUID
	action  SourcingAction
	reason  string

	guard guard.ConstructorGuard
}

func NewChangeSourcingEventStatusCommand(
	eventID kernel.UUID,
	action SourcingAction,
	reason string,
) (ChangeSourcingEventStatusCommand, error) {
	if err := requiredID("eventId", eventID); err != nil {
		return ChangeSourcingEventStatusCommand{}, err
	}
	parsed, err := ParseSourcingAction(string(action))
	if err != nil {
		return ChangeSourcingEventStatusCommand{}, err
	}

	return ChangeSourcingEventStatusCommand{
		eventID: eventID,
		action:  parsed,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeSourcingEventStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeSourcingEventStatusCommandIsNotConstructed)
}

func (c ChangeSourcingEventStatusCommand) EventID() kernel.UUID {
	return c.eventID
}

func (c ChangeSourcingEventStatusCommand) Action() SourcingAction {
	return c.action
}

func (c ChangeSourcingEventStatusCommand) Reason() string {
	return c.reason
}

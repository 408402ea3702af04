package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrStartDueEvaluationsCommandIsNotConstructed = errors.New(
	"StartDueEvaluationsCommand must be created via NewStartDueEvaluationsCommand constructor",
)

// StartDueEvaluationsCommand moves up to Limit Open sourcing events whose
// deadline has passed into evaluation.
type StartDueEvaluationsCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

func NewStartDueEvaluationsCommand(limit int) (StartDueEvaluationsCommand, error) {
	if limit <= 0 {
		return StartDueEvaluationsCommand{}, errs.NewValueIsInvalidError("limit")
	}
	return StartDueEvaluationsCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c StartDueEvaluationsCommand) Validate() error {
	return c.guard.Validate(ErrStartDueEvaluationsCommandIsNotConstructed)
}

func (c StartDueEvaluationsCommand) Limit() int {
	return c.limit
}

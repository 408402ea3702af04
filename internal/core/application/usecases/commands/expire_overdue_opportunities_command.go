package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrExpireOverdueOpportunitiesCommandIsNotConstructed = errors.New(
	"ExpireOverdueOpportunitiesCommand must be created via NewExpireOverdueOpportunitiesCommand constructor",
)

// ExpireOverdueOpportunitiesCommand expires up to Limit Published
// opportunities whose deadline has passed.
type ExpireOverdueOpportunitiesCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

func NewExpireOverdueOpportunitiesCommand(limit int) (ExpireOverdueOpportunitiesCommand, error) {
	if limit <= 0 {
		return ExpireOverdueOpportunitiesCommand{}, errs.NewValueIsInvalidError("limit")
	}
	return ExpireOverdueOpportunitiesCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireOverdueOpportunitiesCommand) Validate() error {
	return c.guard.Validate(ErrExpireOverdueOpportunitiesCommandIsNotConstructed)
}

func (c ExpireOverdueOpportunitiesCommand) Limit() int {
	return c.limit
}

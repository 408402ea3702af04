package queries

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const MaxListLimit = 200

var (
	ErrListOpenOpportunitiesQueryIsNotConstructed = errors.New(
		"ListOpenOpportunitiesQuery must be created via NewListOpenOpportunitiesQuery constructor",
	)
)

// ListOpenOpportunitiesQuery pages through Published opportunities, soonest
// deadline first.
type ListOpenOpportunitiesQuery struct {
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

// NewListOpenOpportunitiesQuery accepts limit in 1..MaxListLimit and a
// non-negative offset.
func NewListOpenOpportunitiesQuery(limit, offset int) (ListOpenOpportunitiesQuery, error) {
	if limit < 1 || limit > MaxListLimit {
		return ListOpenOpportunitiesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		return ListOpenOpportunitiesQuery{}, errs.NewValueIsInvalidError("offset")
	}

	return ListOpenOpportunitiesQuery{
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOpenOpportunitiesQuery) Limit() int {
	return q.limit
}

func (q ListOpenOpportunitiesQuery) Offset() int {
	return q.offset
}

func (q ListOpenOpportunitiesQuery) Validate() error {
	return q.guard.Validate(ErrListOpenOpportunitiesQueryIsNotConstructed)
}

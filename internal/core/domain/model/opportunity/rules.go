package opportunity

import (
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
)

// Subject is what the precondition rules see: the opportunity before the
// mutation plus the arguments of the operation.
type Subject struct {
	Opportunity *Opportunity
	Now         time.Time
	ProposalID  kernel.UUID
	Reason      string
}

var (
	TitleRequired = lifecycle.NewRule("title-required", func(s Subject) (bool, string) {
		return strings.TrimSpace(s.Opportunity.title) != "", "title must not be empty"
	})

	DescriptionRequired = lifecycle.NewRule("description-required", func(s Subject) (bool, string) {
		return strings.TrimSpace(s.Opportunity.description) != "", "description must not be empty"
	})

	BudgetPositive = lifecycle.NewRule("budget-positive", func(s Subject) (bool, string) {
		return s.Opportunity.budget.IsPositive(), "budget must be greater than zero"
	})

	DeadlineInFuture = lifecycle.NewRule("deadline-in-future", func(s Subject) (bool, string) {
		return s.Opportunity.deadline.After(s.Now), "deadline must be after the publication time"
	})

	// DeadlinePassed gates expiry: an opportunity only expires once its
	// deadline is reached.
	DeadlinePassed = lifecycle.NewRule("deadline-passed", func(s Subject) (bool, string) {
		return !s.Now.Before(s.Opportunity.deadline), "deadline has not passed yet"
	})

	ProposalRequired = lifecycle.NewRule("proposal-required", func(s Subject) (bool, string) {
		return s.ProposalID.Validate() == nil, "an awarded proposal must be given"
	})

	ReasonRequired = lifecycle.NewRule("reason-required", func(s Subject) (bool, string) {
		return strings.TrimSpace(s.Reason) != "", "a cancellation reason must be given"
	})
)

var (
	publishChain = lifecycle.NewChain(TitleRequired, DescriptionRequired, BudgetPositive, DeadlineInFuture)
	awardChain   = lifecycle.NewChain(ProposalRequired)
	expireChain  = lifecycle.NewChain(DeadlinePassed)
	cancelChain  = lifecycle.NewChain(ReasonRequired)
)

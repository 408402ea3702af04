package proposal

import (
	"fmt"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
)

const AggregateType = "Proposal"

// Status is the lifecycle state of a proposal.
type Status int

const (
	Unknown Status = iota
	Draft
	Submitted
	UnderReview
	Accepted
	Rejected
	Withdrawn
)

// Only Draft proposals are editable, which is what AcceptsWork means here.
var statusTable = lifecycle.MustNewTable(AggregateType, Draft,
	lifecycle.StateSpec[Status]{
		Status: Draft, Name: "Draft", Priority: 1,
		Transitions: []Status{Submitted, Withdrawn},
		AcceptsWork: true,
	},
	lifecycle.StateSpec[Status]{
		Status: Submitted, Name: "Submitted", Priority: 2,
		Transitions: []Status{UnderReview, Accepted, Rejected, Withdrawn},
		Active: true,
	},
	lifecycle.StateSpec[Status]{
		Status: UnderReview, Name: "UnderReview", DisplayName: "Under review", Priority: 3,
		Transitions: []Status{Accepted, Rejected, Withdrawn},
		Active: true,
	},
	lifecycle.StateSpec[Status]{Status: Accepted, Name: "Accepted", Priority: 4},
	lifecycle.StateSpec[Status]{Status: Rejected, Name: "Rejected", Priority: 5},
	lifecycle.StateSpec[Status]{Status: Withdrawn, Name: "Withdrawn", Priority: 6},
)

func Statuses() []Status {
	return statusTable.Statuses()
}

func ParseStatus(name string) (Status, error) {
	return statusTable.Parse(name)
}

func (s Status) Validate() error {
	if !statusTable.Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	return statusTable.Name(s)
}

func (s Status) DisplayName() string {
	return statusTable.DisplayName(s)
}

func (s Status) AllowedTransitions() []Status {
	return statusTable.AllowedTransitions(s)
}

func (s Status) CanTransitionTo(target Status) bool {
	return statusTable.CanTransitionTo(s, target)
}

func (s Status) ValidateTransitionTo(target Status) error {
	return statusTable.ValidateTransition(s, target)
}

func (s Status) IsTerminal() bool {
	return statusTable.IsTerminal(s)
}

// IsActive reports whether the proposal is waiting for a decision.
func (s Status) IsActive() bool {
	return statusTable.IsActive(s)
}

// IsEditable reports whether Revise is allowed.
func (s Status) IsEditable() bool {
	return statusTable.AcceptsWork(s)
}

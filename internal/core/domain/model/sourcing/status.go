package sourcing

import (
	"fmt"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
)

const AggregateType = "SourcingEvent"

// Status is the lifecycle state of a sourcing event.
type Status int

const (
	Unknown Status = iota
	Draft
	Published
	// Open accepts supplier responses until the deadline.
	Open
	Evaluation
	Awarded
	Closed
	Cancelled
)

// Open lists itself so a deadline extension is an explicit transition.
var statusTable = lifecycle.MustNewTable(AggregateType, Draft,
	lifecycle.StateSpec[Status]{
		Status: Draft, Name: "Draft", Priority: 1,
		Transitions: []Status{Published, Cancelled},
	},
	lifecycle.StateSpec[Status]{
		Status: Published, Name: "Published", DisplayName: "Announced", Priority: 2,
		Transitions: []Status{Open, Cancelled},
		Active: true,
	},
	lifecycle.StateSpec[Status]{
		Status: Open, Name: "Open", DisplayName: "Open for responses", Priority: 3,
		Transitions: []Status{Open, Evaluation, Cancelled},
		Active: true, AcceptsWork: true,
	},
	lifecycle.StateSpec[Status]{
		Status: Evaluation, Name: "Evaluation", DisplayName: "Under evaluation", Priority: 4,
		Transitions: []Status{Open, Awarded, Cancelled},
		Active: true,
	},
	lifecycle.StateSpec[Status]{
		Status: Awarded, Name: "Awarded", Priority: 5,
		Transitions: []Status{Closed},
		Active: true,
	},
	lifecycle.StateSpec[Status]{Status: Closed, Name: "Closed", Priority: 6},
	lifecycle.StateSpec[Status]{Status: Cancelled, Name: "Cancelled", Priority: 7},
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

func (s Status) IsActive() bool {
	return statusTable.IsActive(s)
}

// AcceptsResponses reports whether suppliers may currently respond.
func (s Status) AcceptsResponses() bool {
	return statusTable.AcceptsWork(s)
}

package opportunity

import (
	"fmt"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
)

// AggregateType names the aggregate in errors, events and the outbox.
const AggregateType = "Opportunity"

// Status is the lifecycle state of an opportunity. Transitions, activity and
// whether proposals are accepted are defined once in statusTable.
type Status int

const (
	// Unknown is the zero value and is never a valid status.
	Unknown Status = iota

	// Draft is the initial status. The owner may still edit the opportunity
	// and it is not visible to companies.
	Draft

	// Published opportunities are visible and accept proposals.
	Published

	// UnderReview means the owner is comparing proposals. Proposals are still
	// accepted until an award is made.
	UnderReview

	// Awarded means a proposal was accepted and work is in progress.
	Awarded

	// Completed is terminal: the awarded work was delivered.
	Completed

	// Closed is terminal: the owner stopped the opportunity without an award.
	Closed

	// Cancelled is terminal and carries a cancellation reason.
	Cancelled

	// Expired is terminal: the deadline passed without an award.
	Expired
)

var statusTable = lifecycle.MustNewTable(AggregateType, Draft,
	lifecycle.StateSpec[Status]{
		Status: Draft, Name: "Draft", DisplayName: "Draft", Priority: 1,
		Transitions: []Status{Published, Cancelled},
	},
	lifecycle.StateSpec[Status]{
		Status: Published, Name: "Published", DisplayName: "Open for proposals", Priority: 2,
		Transitions: []Status{UnderReview, Closed, Cancelled, Expired},
		Active: true, AcceptsWork: true,
	},
	lifecycle.StateSpec[Status]{
		Status: UnderReview, Name: "UnderReview", DisplayName: "Under review", Priority: 3,
		Transitions: []Status{Published, Awarded, Closed, Cancelled},
		Active: true, AcceptsWork: true,
	},
	lifecycle.StateSpec[Status]{
		Status: Awarded, Name: "Awarded", DisplayName: "Awarded", Priority: 4,
		Transitions: []Status{Completed, Cancelled},
		Active: true,
	},
	lifecycle.StateSpec[Status]{Status: Completed, Name: "Completed", DisplayName: "Completed", Priority: 5},
	lifecycle.StateSpec[Status]{Status: Closed, Name: "Closed", DisplayName: "Closed", Priority: 6},
	lifecycle.StateSpec[Status]{Status: Cancelled, Name: "Cancelled", DisplayName: "Cancelled", Priority: 7},
	lifecycle.StateSpec[Status]{Status: Expired, Name: "Expired", DisplayName: "Expired", Priority: 8},
)

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return statusTable.Statuses()
}

// ParseStatus resolves the persisted name of a status.
//
// Example:
//
//	status, err := opportunity.ParseStatus("UnderReview")
func ParseStatus(name string) (Status, error) {
	return statusTable.Parse(name)
}

// Validate returns an error for Unknown and any value outside the table.
// Use it on values coming from storage or the API.
func (s Status) Validate() error {
	if !statusTable.Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical name, or "Unknown". It implements fmt.Stringer.
func (s Status) String() string {
	return statusTable.Name(s)
}

// DisplayName returns the label shown to users.
func (s Status) DisplayName() string {
	return statusTable.DisplayName(s)
}

// Priority orders statuses for listings.
func (s Status) Priority() int {
	return statusTable.Priority(s)
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	return statusTable.AllowedTransitions(s)
}

// CanTransitionTo reports whether target is in s.AllowedTransitions().
func (s Status) CanTransitionTo(target Status) bool {
	return statusTable.CanTransitionTo(s, target)
}

// ValidateTransitionTo returns *errs.InvalidStateTransitionError when the
// move is not in the table.
func (s Status) ValidateTransitionTo(target Status) error {
	return statusTable.ValidateTransition(s, target)
}

// IsTerminal reports whether s has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return statusTable.IsTerminal(s)
}

// IsActive reports whether the opportunity is visible and in progress.
func (s Status) IsActive() bool {
	return statusTable.IsActive(s)
}

// AcceptsProposals reports whether companies may submit proposals.
func (s Status) AcceptsProposals() bool {
	return statusTable.AcceptsWork(s)
}

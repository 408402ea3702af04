package opportunity

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const maxTitleLength = 200

// ErrOpportunityIsNotConstructed is returned by methods called on an
// Opportunity that was not built with NewOpportunity or Restore.
var ErrOpportunityIsNotConstructed = errs.NewValueIsRequiredError("Opportunity must be created via NewOpportunity or Restore")

// Domain event tags emitted by Opportunity.
const (
	EventPublished     = "Published"
	EventReviewStarted = "ReviewStarted"
	EventReopened      = "Reopened"
	EventAwarded       = "Awarded"
	EventCompleted     = "Completed"
	EventClosed        = "Closed"
	EventCancelled     = "Cancelled"
	EventExpired       = "Expired"
)

// Opportunity is the aggregate root for a consumer's request for work.
//
// Invariants:
//   - id and ownerID are valid UUIDs
//   - status is always a member of the status table
//   - a terminal opportunity rejects every mutation
//   - awardedProposalID is set exactly when the opportunity was awarded
//
// Opportunity values are immutable. Draft opportunities may be incomplete;
// the publish rules decide whether they are ready to be shown.
type Opportunity struct {
	id                 kernel.UUID
	ownerID            kernel.UUID
	title              string
	description        string
	budget             kernel.Money
	deadline           time.Time
	status             Status
	awardedProposalID  kernel.UUID
	cancellationReason string
	createdAt          time.Time
	updatedAt          time.Time

	// version is the persisted version this value was loaded at. It is
	// only advanced by the repository.
	version int64

	// events holds the events of the mutation that produced this value.
	events []lifecycle.DomainEvent

	guard guard.ConstructorGuard
}

// NewOpportunity creates a Draft opportunity.
//
// Parameters:
//   - id, ownerID: valid identities
//   - title: at most 200 characters, may be empty while drafting
//   - budget: a constructed Money value
//   - deadline: when proposals stop being accepted
//   - now: creation time
//
// Returns every invalid parameter at once, joined with errors.Join.
//
// Example:
//
//	budget, _ := kernel.NewMoney(500_000, "EUR")
//	opp, err := opportunity.NewOpportunity(kernel.NewUUID(), ownerID,
//	    "Kitchen renovation", "Replace cabinets and countertop", budget,
//	    now.AddDate(0, 0, 30), now)
func NewOpportunity(
	id, ownerID kernel.UUID,
	title, description string,
	budget kernel.Money,
	deadline time.Time,
	now time.Time,
) (*Opportunity, error) {
	o := &Opportunity{
		status:    Draft,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwnerID(ownerID),
		o.setTitle(title),
		o.setBudget(budget),
		o.setDeadline(deadline),
	); err != nil {
		return nil, err
	}
	o.description = strings.TrimSpace(description)

	return o, nil
}

// Validate returns ErrOpportunityIsNotConstructed for zero values.
func (o *Opportunity) Validate() error {
	if o == nil {
		return ErrOpportunityIsNotConstructed
	}
	return o.guard.Validate(ErrOpportunityIsNotConstructed)
}

// IsEqual compares identities only.
func (o *Opportunity) IsEqual(other *Opportunity) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Opportunity) ID() kernel.UUID {
	return o.id
}

func (o *Opportunity) OwnerID() kernel.UUID {
	return o.ownerID
}

func (o *Opportunity) Title() string {
	return o.title
}

func (o *Opportunity) Description() string {
	return o.description
}

func (o *Opportunity) Budget() kernel.Money {
	return o.budget
}

func (o *Opportunity) Deadline() time.Time {
	return o.deadline
}

func (o *Opportunity) Status() Status {
	return o.status
}

// AwardedProposalID returns the winning proposal and whether there is one.
func (o *Opportunity) AwardedProposalID() (kernel.UUID, bool) {
	return o.awardedProposalID, o.awardedProposalID.Validate() == nil
}

func (o *Opportunity) CancellationReason() string {
	return o.cancellationReason
}

func (o *Opportunity) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Opportunity) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the persisted version the value was loaded at, used by the
// repository as the expected version on save.
func (o *Opportunity) Version() int64 {
	return o.version
}

// AcceptsProposals reports whether a proposal submitted at now may be taken.
func (o *Opportunity) AcceptsProposals(now time.Time) bool {
	return o.status.AcceptsProposals() && now.Before(o.deadline)
}

// IsOverdue reports whether the deadline has passed while the opportunity is
// still collecting proposals.
func (o *Opportunity) IsOverdue(now time.Time) bool {
	return o.status == Published && !now.Before(o.deadline)
}

// DomainEvents returns the events produced by the mutation that created this
// value. Values built with NewOpportunity or Restore have none.
func (o *Opportunity) DomainEvents() []lifecycle.DomainEvent {
	return append([]lifecycle.DomainEvent(nil), o.events...)
}

// AcknowledgeEvents returns a copy without pending events. Callers use it
// once the events were handed to the outbox.
func (o *Opportunity) AcknowledgeEvents() *Opportunity {
	next := *o
	next.events = nil
	return &next
}

// Publish moves a Draft opportunity to Published after the publish rules
// (title, description, positive budget, future deadline) pass.
func (o *Opportunity) Publish(now time.Time) (*Opportunity, []lifecycle.DomainEvent, error) {
	return o.transition(Published, now, publishChain, Subject{}, nil, EventPublished, map[string]any{
		"deadline": o.deadline,
		"budget":   o.budget.Amount(),
		"currency": o.budget.Currency(),
	})
}

// StartReview freezes the proposal list for comparison.
func (o *Opportunity) StartReview(now time.Time) (*Opportunity, []lifecycle.DomainEvent, error) {
	return o.transition(UnderReview, now, lifecycle.Chain[Subject]{}, Subject{}, nil, EventReviewStarted, nil)
}

// ReopenForProposals moves an opportunity under review back to Published.
func (o *Opportunity) ReopenForProposals(now time.Time) (*Opportunity, []lifecycle.DomainEvent, error) {
	return o.transition(Published, now, lifecycle.Chain[Subject]{}, Subject{}, nil, EventReopened, nil)
}

// Award records the winning proposal. Only opportunities under review can be
// awarded.
func (o *Opportunity) Award(proposalID kernel.UUID, now time.Time) (*Opportunity, []lifecycle.DomainEvent, error) {
	return o.transition(Awarded, now, awardChain, Subject{ProposalID: proposalID},
		func(next *Opportunity) { next.awardedProposalID = proposalID },
		EventAwarded, map[string]any{"proposalId": proposalID.String()})
}

func (o *Opportunity) Complete(now time.Time) (*Opportunity, []lifecycle.DomainEvent, error) {
	return o.transition(Completed, now, lifecycle.Chain[Subject]{}, Subject{}, nil, EventCompleted, nil)
}

func (o *Opportunity) Close(now time.Time) (*Opportunity, []lifecycle.DomainEvent, error) {
	return o.transition(Closed, now, lifecycle.Chain[Subject]{}, Subject{}, nil, EventClosed, nil)
}

// Cancel requires a non-empty reason, which is kept on the aggregate.
func (o *Opportunity) Cancel(reason string, now time.Time) (*Opportunity, []lifecycle.DomainEvent, error) {
	reason = strings.TrimSpace(reason)
	return o.transition(Cancelled, now, cancelChain, Subject{Reason: reason},
		func(next *Opportunity) { next.cancellationReason = reason },
		EventCancelled, map[string]any{"reason": reason})
}

// Expire closes a Published opportunity whose deadline has passed.
func (o *Opportunity) Expire(now time.Time) (*Opportunity, []lifecycle.DomainEvent, error) {
	return o.transition(Expired, now, expireChain, Subject{}, nil, EventExpired, map[string]any{
		"deadline": o.deadline,
	})
}

// transition is the one mutation algorithm shared by every operation:
// check the table, run the rules, copy, apply, record.
func (o *Opportunity) transition(
	target Status,
	now time.Time,
	rules lifecycle.Chain[Subject],
	subject Subject,
	apply func(next *Opportunity),
	eventType string,
	payload map[string]any,
) (*Opportunity, []lifecycle.DomainEvent, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}
	if err := o.status.ValidateTransitionTo(target); err != nil {
		return nil, nil, err
	}

	subject.Opportunity = o
	subject.Now = now
	if err := rules.Validate(subject); err != nil {
		return nil, nil, err
	}

	next := *o
	next.status = target
	next.updatedAt = now
	if apply != nil {
		apply(&next)
	}

	if payload == nil {
		payload = map[string]any{}
	}
	payload["from"] = o.status.String()
	payload["to"] = target.String()

	rec := lifecycle.NewRecorder(AggregateType, o.id, now)
	rec.Record(eventType, payload)
	next.events = rec.Events()

	return &next, next.DomainEvents(), nil
}

func (o *Opportunity) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	o.id = id
	return nil
}

func (o *Opportunity) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerId", err)
	}
	o.ownerID = ownerID
	return nil
}

func (o *Opportunity) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n > maxTitleLength {
		return errs.NewValueIsOutOfRangeError("title length", n, 0, maxTitleLength)
	}
	o.title = title
	return nil
}

func (o *Opportunity) setBudget(budget kernel.Money) error {
	if err := budget.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("budget", err)
	}
	o.budget = budget
	return nil
}

func (o *Opportunity) setDeadline(deadline time.Time) error {
	if deadline.IsZero() {
		return errs.NewValueIsRequiredError("deadline")
	}
	o.deadline = deadline
	return nil
}

func (o *Opportunity) String() string {
	return fmt.Sprintf("Opportunity(%s, %s)", o.id, o.status)
}

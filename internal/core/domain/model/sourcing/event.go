package sourcing

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrEventIsNotConstructed = errs.NewValueIsRequiredError("sourcing Event must be created via NewEvent or Restore")

// Domain event tags emitted by Event.
const (
	EventPublished           = "Published"
	EventParticipantsInvited = "ParticipantsInvited"
	EventOpened              = "Opened"
	EventDeadlineExtended    = "DeadlineExtended"
	EventEvaluationStarted   = "EvaluationStarted"
	EventRoundStarted        = "RoundStarted"
	EventAwarded             = "Awarded"
	EventClosed              = "Closed"
	EventCancelled           = "Cancelled"
)

const day = 24 * time.Hour

// Event is a procurement event run by a buyer. Its timing and participation
// limits come from the PolicyEntry of its type, which callers pass to the
// operations that need it.
//
// Invariants:
//   - round starts at 1 and only grows through StartNextRound
//   - deadline is set exactly when the event has been opened
//   - invitedSuppliers holds unique, valid identities
type Event struct {
	id                 kernel.UUID
	ownerID            kernel.UUID
	eventType          EventType
	title              string
	description        string
	visibility         Visibility
	invitedSuppliers   []kernel.UUID
	durationDays       int
	status             Status
	round              int
	extensions         int
	startsAt           time.Time
	deadline           time.Time
	awardedSupplierID  kernel.UUID
	cancellationReason string
	createdAt          time.Time
	updatedAt          time.Time
	version            int64
	events             []lifecycle.DomainEvent
	guard              guard.ConstructorGuard
}

// NewEvent creates a Draft event. durationDays is checked against the
// policy only when the event is published; callers usually pass the
// policy's default.
//
// Example:
//
//	policy, _ := table.Lookup(sourcing.RFQ)
//	ev, err := sourcing.NewEvent(kernel.NewUUID(), buyerID, sourcing.RFQ,
//	    "Office chairs", "", sourcing.Public, nil, policy.DefaultDurationDays(), now)
func NewEvent(
	id, ownerID kernel.UUID,
	eventType EventType,
	title, description string,
	visibility Visibility,
	invitedSuppliers []kernel.UUID,
	durationDays int,
	now time.Time,
) (*Event, error) {
	e := &Event{
		title:       strings.TrimSpace(title),
		description: strings.TrimSpace(description),
		status:      Draft,
		round:       1,
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setOwnerID(ownerID),
		e.setEventType(eventType),
		e.setVisibility(visibility),
		e.setInvitedSuppliers(invitedSuppliers),
		e.setDurationDays(durationDays),
	); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e *Event) IsEqual(other *Event) bool {
	return other != nil && e.id.IsEqual(other.id)
}

func (e *Event) ID() kernel.UUID {
	return e.id
}

func (e *Event) OwnerID() kernel.UUID {
	return e.ownerID
}

func (e *Event) Type() EventType {
	return e.eventType
}

func (e *Event) Title() string {
	return e.title
}

func (e *Event) Description() string {
	return e.description
}

func (e *Event) Visibility() Visibility {
	return e.visibility
}

// InvitedSuppliers returns a copy of the invitation list.
func (e *Event) InvitedSuppliers() []kernel.UUID {
	return slices.Clone(e.invitedSuppliers)
}

func (e *Event) DurationDays() int {
	return e.durationDays
}

func (e *Event) Status() Status {
	return e.status
}

func (e *Event) Round() int {
	return e.round
}

func (e *Event) Extensions() int {
	return e.extensions
}

func (e *Event) StartsAt() time.Time {
	return e.startsAt
}

// Deadline is zero until the event is opened.
func (e *Event) Deadline() time.Time {
	return e.deadline
}

func (e *Event) AwardedSupplierID() (kernel.UUID, bool) {
	return e.awardedSupplierID, e.awardedSupplierID.Validate() == nil
}

func (e *Event) CancellationReason() string {
	return e.cancellationReason
}

func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Event) UpdatedAt() time.Time {
	return e.updatedAt
}

func (e *Event) Version() int64 {
	return e.version
}

// IsDueForEvaluation reports whether an Open event reached its deadline.
func (e *Event) IsDueForEvaluation(now time.Time) bool {
	return e.status == Open && !now.Before(e.deadline)
}

func (e *Event) DomainEvents() []lifecycle.DomainEvent {
	return slices.Clone(e.events)
}

func (e *Event) AcknowledgeEvents() *Event {
	next := *e
	next.events = nil
	return &next
}

// Publish announces the event. The policy rules run in order: matching type,
// title, duration bounds, visibility, and for invite-only events the minimum
// number of invited suppliers. Invite-only events also emit
// ParticipantsInvited after Published.
func (e *Event) Publish(policy PolicyEntry, now time.Time) (*Event, []lifecycle.DomainEvent, error) {
	return e.mutate(Published, nil, now, publishChain, Subject{Policy: policy}, func(next *Event, rec *lifecycle.Recorder) {
		rec.Record(EventPublished, e.transitionPayload(Published, map[string]any{
			"eventType":    e.eventType.String(),
			"visibility":   e.visibility.String(),
			"durationDays": e.durationDays,
		}))
		if e.visibility == InviteOnly {
			suppliers := make([]string, len(e.invitedSuppliers))
			for i, id := range e.invitedSuppliers {
				suppliers[i] = id.String()
			}
			rec.Record(EventParticipantsInvited, map[string]any{"suppliers": suppliers})
		}
	})
}

// Open starts accepting responses. The deadline is now plus the event's
// duration.
func (e *Event) Open(now time.Time) (*Event, []lifecycle.DomainEvent, error) {
	return e.mutate(Open, []Status{Published}, now, lifecycle.Chain[Subject]{}, Subject{}, func(next *Event, rec *lifecycle.Recorder) {
		next.startsAt = now
		next.deadline = now.Add(time.Duration(e.durationDays) * day)
		rec.Record(EventOpened, e.transitionPayload(Open, map[string]any{
			"round":    next.round,
			"deadline": next.deadline,
		}))
	})
}

// ExtendDeadline pushes the deadline of an Open event by the policy's
// extension days, within the policy's extension count and maximum duration.
// durationDays keeps the base length of a round; the extended length is
// durationDays plus Extensions times the policy's extension days.
func (e *Event) ExtendDeadline(policy PolicyEntry, now time.Time) (*Event, []lifecycle.DomainEvent, error) {
	return e.mutate(Open, []Status{Open}, now, extendChain, Subject{Policy: policy}, func(next *Event, rec *lifecycle.Recorder) {
		next.extensions++
		next.deadline = e.deadline.Add(time.Duration(policy.ExtensionDays()) * day)
		rec.Record(EventDeadlineExtended, e.transitionPayload(Open, map[string]any{
			"previousDeadline": e.deadline,
			"deadline":         next.deadline,
			"extension":        next.extensions,
		}))
	})
}

func (e *Event) StartEvaluation(now time.Time) (*Event, []lifecycle.DomainEvent, error) {
	return e.mutate(Evaluation, nil, now, lifecycle.Chain[Subject]{}, Subject{}, func(_ *Event, rec *lifecycle.Recorder) {
		rec.Record(EventEvaluationStarted, e.transitionPayload(Evaluation, map[string]any{"round": e.round}))
	})
}

// StartNextRound reopens an event under evaluation for another round. Only
// multi-round types may do so, up to the policy's MaxRounds.
func (e *Event) StartNextRound(policy PolicyEntry, now time.Time) (*Event, []lifecycle.DomainEvent, error) {
	return e.mutate(Open, []Status{Evaluation}, now, nextRoundChain, Subject{Policy: policy}, func(next *Event, rec *lifecycle.Recorder) {
		next.round++
		next.extensions = 0
		next.startsAt = now
		next.deadline = now.Add(time.Duration(e.durationDays) * day)
		rec.Record(EventRoundStarted, e.transitionPayload(Open, map[string]any{
			"round":    next.round,
			"deadline": next.deadline,
		}))
	})
}

// Award names the winning supplier. Invite-only events can only be awarded
// to an invited supplier.
func (e *Event) Award(supplierID kernel.UUID, now time.Time) (*Event, []lifecycle.DomainEvent, error) {
	return e.mutate(Awarded, nil, now, awardChain, Subject{SupplierID: supplierID}, func(next *Event, rec *lifecycle.Recorder) {
		next.awardedSupplierID = supplierID
		rec.Record(EventAwarded, e.transitionPayload(Awarded, map[string]any{
			"supplierId": supplierID.String(),
			"round":      e.round,
		}))
	})
}

func (e *Event) Close(now time.Time) (*Event, []lifecycle.DomainEvent, error) {
	return e.mutate(Closed, nil, now, lifecycle.Chain[Subject]{}, Subject{}, func(_ *Event, rec *lifecycle.Recorder) {
		rec.Record(EventClosed, e.transitionPayload(Closed, nil))
	})
}

func (e *Event) Cancel(reason string, now time.Time) (*Event, []lifecycle.DomainEvent, error) {
	reason = strings.TrimSpace(reason)
	return e.mutate(Cancelled, nil, now, cancelChain, Subject{Reason: reason}, func(next *Event, rec *lifecycle.Recorder) {
		next.cancellationReason = reason
		rec.Record(EventCancelled, e.transitionPayload(Cancelled, map[string]any{"reason": reason}))
	})
}

// mutate moves the event to target. When from is non-empty the current status
// must also be one of from; Open lists itself, so the table alone cannot tell
// a reopening apart from a deadline extension.
func (e *Event) mutate(
	target Status,
	from []Status,
	now time.Time,
	rules lifecycle.Chain[Subject],
	subject Subject,
	apply func(next *Event, rec *lifecycle.Recorder),
) (*Event, []lifecycle.DomainEvent, error) {
	if err := e.Validate(); err != nil {
		return nil, nil, err
	}
	if err := e.status.ValidateTransitionTo(target); err != nil {
		return nil, nil, err
	}
	if len(from) > 0 && !slices.Contains(from, e.status) {
		return nil, nil, errs.NewInvalidStateTransitionError(AggregateType, e.status.String(), target.String())
	}

	subject.Event = e
	subject.Now = now
	if err := rules.Validate(subject); err != nil {
		return nil, nil, err
	}

	next := *e
	next.invitedSuppliers = slices.Clone(e.invitedSuppliers)
	next.status = target
	next.updatedAt = now

	rec := lifecycle.NewRecorder(AggregateType, e.id, now)
	apply(&next, rec)
	next.events = rec.Events()

	return &next, next.DomainEvents(), nil
}

func (e *Event) transitionPayload(target Status, payload map[string]any) map[string]any {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["from"] = e.status.String()
	payload["to"] = target.String()
	return payload
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	e.id = id
	return nil
}

func (e *Event) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerId", err)
	}
	e.ownerID = id
	return nil
}

func (e *Event) setEventType(t EventType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	e.eventType = t
	return nil
}

func (e *Event) setVisibility(v Visibility) error {
	if err := v.Validate(); err != nil {
		return err
	}
	e.visibility = v
	return nil
}

func (e *Event) setInvitedSuppliers(ids []kernel.UUID) error {
	unique := make([]kernel.UUID, 0, len(ids))
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("invitedSuppliers[%d]", i), err)
		}
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}
	e.invitedSuppliers = unique
	return nil
}

func (e *Event) setDurationDays(days int) error {
	if days < 1 {
		return errs.NewValueIsOutOfRangeError("durationDays", days, 1, "policy maximum")
	}
	e.durationDays = days
	return nil
}

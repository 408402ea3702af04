package proposal

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrProposalIsNotConstructed = errs.NewValueIsRequiredError("Proposal must be created via NewProposal or Restore")

const (
	EventSubmitted     = "Submitted"
	EventReviewStarted = "ReviewStarted"
	EventAccepted      = "Accepted"
	EventRejected      = "Rejected"
	EventWithdrawn     = "Withdrawn"
)

const maxDeliveryDays = 3650

// Proposal is a company's offer for one opportunity. It is immutable; every
// operation returns a new value.
type Proposal struct {
	id            kernel.UUID
	opportunityID kernel.UUID
	companyID     kernel.UUID
	price         kernel.Money
	deliveryDays  int
	coverLetter   string
	status        Status
	reason        string
	submittedAt   time.Time
	createdAt     time.Time
	updatedAt     time.Time
	version       int64
	events        []lifecycle.DomainEvent
	guard         guard.ConstructorGuard
}

// NewProposal creates a Draft proposal. Price, delivery days and the cover
// letter are only enforced on Submit so drafts can be saved incomplete.
func NewProposal(
	id, opportunityID, companyID kernel.UUID,
	price kernel.Money,
	deliveryDays int,
	coverLetter string,
	now time.Time,
) (*Proposal, error) {
	p := &Proposal{
		status:    Draft,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOpportunityID(opportunityID),
		p.setCompanyID(companyID),
		p.setTerms(price, deliveryDays, coverLetter),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Proposal) Validate() error {
	if p == nil {
		return ErrProposalIsNotConstructed
	}
	return p.guard.Validate(ErrProposalIsNotConstructed)
}

func (p *Proposal) IsEqual(other *Proposal) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Proposal) ID() kernel.UUID { return p.id }
func (p *Proposal) OpportunityID() kernel.UUID { return p.opportunityID }
func (p *Proposal) CompanyID() kernel.UUID { return p.companyID }
func (p *Proposal) Price() kernel.Money { return p.price }
func (p *Proposal) DeliveryDays() int { return p.deliveryDays }
func (p *Proposal) CoverLetter() string { return p.coverLetter }
func (p *Proposal) Status() Status { return p.status }

// Reason is the rejection or withdrawal reason, if any.
func (p *Proposal) Reason() string { return p.reason }
func (p *Proposal) SubmittedAt() time.Time { return p.submittedAt }
func (p *Proposal) CreatedAt() time.Time { return p.createdAt }
func (p *Proposal) UpdatedAt() time.Time { return p.updatedAt }
func (p *Proposal) Version() int64 { return p.version }

func (p *Proposal) DomainEvents() []lifecycle.DomainEvent {
	return append([]lifecycle.DomainEvent(nil), p.events...)
}

func (p *Proposal) AcknowledgeEvents() *Proposal {
	next := *p
	next.events = nil
	return &next
}

// Submit sends the draft to the opportunity owner after the submit rules pass.
func (p *Proposal) Submit(now time.Time) (*Proposal, []lifecycle.DomainEvent, error) {
	return p.mutate(Submitted, now, submitChain, func(next *Proposal) map[string]any {
		next.submittedAt = now
		return map[string]any{
			"opportunityId": p.opportunityID.String(),
			"companyId":     p.companyID.String(),
			"price":         p.price.Amount(),
			"currency":      p.price.Currency(),
			"deliveryDays":  p.deliveryDays,
		}
	}, EventSubmitted)
}

func (p *Proposal) StartReview(now time.Time) (*Proposal, []lifecycle.DomainEvent, error) {
	return p.mutate(UnderReview, now, lifecycle.Chain[Subject]{}, nil, EventReviewStarted)
}

func (p *Proposal) Accept(now time.Time) (*Proposal, []lifecycle.DomainEvent, error) {
	return p.mutate(Accepted, now, lifecycle.Chain[Subject]{}, func(*Proposal) map[string]any {
		return map[string]any{"opportunityId": p.opportunityID.String()}
	}, EventAccepted)
}

func (p *Proposal) Reject(reason string, now time.Time) (*Proposal, []lifecycle.DomainEvent, error) {
	return p.mutate(Rejected, now, lifecycle.Chain[Subject]{}, withReason(reason), EventRejected)
}

func (p *Proposal) Withdraw(reason string, now time.Time) (*Proposal, []lifecycle.DomainEvent, error) {
	return p.mutate(Withdrawn, now, lifecycle.Chain[Subject]{}, withReason(reason), EventWithdrawn)
}

// Revise replaces the commercial terms of a Draft. It is not a transition
// and emits no events; outside Draft it fails with an
// InvalidStateTransitionError whose target is the current status.
func (p *Proposal) Revise(price kernel.Money, deliveryDays int, coverLetter string, now time.Time) (*Proposal, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !p.status.IsEditable() {
		return nil, errs.NewInvalidStateTransitionError(AggregateType, p.status.String(), p.status.String())
	}

	next := *p
	next.events = nil
	if err := next.setTerms(price, deliveryDays, coverLetter); err != nil {
		return nil, err
	}
	next.updatedAt = now

	return &next, nil
}

func withReason(reason string) func(*Proposal) map[string]any {
	return func(next *Proposal) map[string]any {
		next.reason = strings.TrimSpace(reason)
		return map[string]any{"reason": next.reason}
	}
}

func (p *Proposal) mutate(
	target Status,
	now time.Time,
	rules lifecycle.Chain[Subject],
	apply func(next *Proposal) map[string]any,
	eventType string,
) (*Proposal, []lifecycle.DomainEvent, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if err := p.status.ValidateTransitionTo(target); err != nil {
		return nil, nil, err
	}
	if err := rules.Validate(Subject{Proposal: p, Now: now}); err != nil {
		return nil, nil, err
	}

	next := *p
	next.status = target
	next.updatedAt = now

	payload := map[string]any{}
	if apply != nil {
		if extra := apply(&next); extra != nil {
			payload = extra
		}
	}
	payload["from"] = p.status.String()
	payload["to"] = target.String()

	rec := lifecycle.NewRecorder(AggregateType, p.id, now)
	rec.Record(eventType, payload)
	next.events = rec.Events()

	return &next, next.DomainEvents(), nil
}

func (p *Proposal) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	p.id = id
	return nil
}

func (p *Proposal) setOpportunityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("opportunityId", err)
	}
	p.opportunityID = id
	return nil
}

func (p *Proposal) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyId", err)
	}
	p.companyID = id
	return nil
}

func (p *Proposal) setTerms(price kernel.Money, deliveryDays int, coverLetter string) error {
	var problems []error
	if err := price.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("price", err))
	}
	if deliveryDays < 0 || deliveryDays > maxDeliveryDays {
		problems = append(problems, errs.NewValueIsOutOfRangeError("deliveryDays", deliveryDays, 0, maxDeliveryDays))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	p.price = price
	p.deliveryDays = deliveryDays
	p.coverLetter = strings.TrimSpace(coverLetter)
	return nil
}

package opportunity

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Snapshot is the serializable form of an Opportunity used by persistence
// adapters and read models. Pending events are not part of it.
type Snapshot struct {
	ID                 kernel.UUID  `json:"id"`
	OwnerID            kernel.UUID  `json:"ownerId"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	BudgetAmount       int64        `json:"budgetAmount"`
	BudgetCurrency     string       `json:"budgetCurrency"`
	Deadline           time.Time    `json:"deadline"`
	Status             string       `json:"status"`
	AwardedProposalID  *kernel.UUID `json:"awardedProposalId,omitempty"`
	CancellationReason string       `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
	Version            int64        `json:"version"`
}

// Snapshot captures every attribute of o.
func (o *Opportunity) Snapshot() Snapshot {
	s := Snapshot{
		ID:                 o.id,
		OwnerID:            o.ownerID,
		Title:              o.title,
		Description:        o.description,
		BudgetAmount:       o.budget.Amount(),
		BudgetCurrency:     o.budget.Currency(),
		Deadline:           o.deadline,
		Status:             o.status.String(),
		CancellationReason: o.cancellationReason,
		CreatedAt:          o.createdAt,
		UpdatedAt:          o.updatedAt,
		Version:            o.version,
	}
	if id, ok := o.AwardedProposalID(); ok {
		s.AwardedProposalID = &id
	}
	return s
}

// Restore rebuilds an Opportunity from storage. The status must be a known
// name and an Awarded or Completed opportunity must carry its proposal.
func Restore(s Snapshot) (*Opportunity, error) {
	status, err := ParseStatus(s.Status)
	if err != nil {
		return nil, err
	}
	budget, err := kernel.NewMoney(s.BudgetAmount, s.BudgetCurrency)
	if err != nil {
		return nil, err
	}

	o := &Opportunity{
		description:        s.Description,
		status:             status,
		cancellationReason: s.CancellationReason,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		version:            s.Version,
		guard:              guard.NewConstructorGuard(),
	}
	if err = errors.Join(
		o.setID(s.ID),
		o.setOwnerID(s.OwnerID),
		o.setTitle(s.Title),
		o.setBudget(budget),
		o.setDeadline(s.Deadline),
	); err != nil {
		return nil, err
	}

	if s.AwardedProposalID != nil {
		o.awardedProposalID = *s.AwardedProposalID
	}
	if (status == Awarded || status == Completed) && o.awardedProposalID.Validate() != nil {
		return nil, errs.NewValueIsRequiredError("awardedProposalId")
	}

	return o, nil
}

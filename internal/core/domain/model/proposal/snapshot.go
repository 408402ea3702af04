package proposal

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// Snapshot is the serializable form of a Proposal.
type Snapshot struct {
	ID            kernel.UUID `json:"id"`
	OpportunityID kernel.UUID `json:"opportunityId"`
	CompanyID     kernel.UUID `json:"companyId"`
	PriceAmount   int64       `json:"priceAmount"`
	PriceCurrency string      `json:"priceCurrency"`
	DeliveryDays  int         `json:"deliveryDays"`
	CoverLetter   string      `json:"coverLetter"`
	Status        string      `json:"status"`
	Reason        string      `json:"reason,omitempty"`
	SubmittedAt   time.Time   `json:"submittedAt"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	Version       int64       `json:"version"`
}

func (p *Proposal) Snapshot() Snapshot {
	return Snapshot{
		ID:            p.id,
		OpportunityID: p.opportunityID,
		CompanyID:     p.companyID,
		PriceAmount:   p.price.Amount(),
		PriceCurrency: p.price.Currency(),
		DeliveryDays:  p.deliveryDays,
		CoverLetter:   p.coverLetter,
		Status:        p.status.String(),
		Reason:        p.reason,
		SubmittedAt:   p.submittedAt,
		CreatedAt:     p.createdAt,
		UpdatedAt:     p.updatedAt,
		Version:       p.version,
	}
}

// Restore rebuilds a Proposal loaded from storage.
func Restore(s Snapshot) (*Proposal, error) {
	status, err := ParseStatus(s.Status)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(s.PriceAmount, s.PriceCurrency)
	if err != nil {
		return nil, err
	}

	p := &Proposal{
		status:      status,
		reason:      s.Reason,
		submittedAt: s.SubmittedAt,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
		version:     s.Version,
		guard:       guard.NewConstructorGuard(),
	}
	if err = errors.Join(
		p.setID(s.ID),
		p.setOpportunityID(s.OpportunityID),
		p.setCompanyID(s.CompanyID),
		p.setTerms(price, s.DeliveryDays, s.CoverLetter),
	); err != nil {
		return nil, err
	}

	return p, nil
}

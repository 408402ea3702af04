// Package proposalrepo persists Proposal aggregates with GORM.
package proposalrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/proposal"

	"github.com/google/uuid"
)

// ProposalDTO is the row layout of the proposals table.
type ProposalDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OpportunityID uuid.UUID `gorm:"type:uuid;index"`
	CompanyID     uuid.UUID `gorm:"type:uuid;index"`
	PriceAmount   int64
	PriceCurrency string `gorm:"size:3"`
	DeliveryDays  int
	CoverLetter   string
	Status        string `gorm:"size:32;index"`
	Reason        string
	SubmittedAt   *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
	Version       int64     `gorm:"not null;default:0"`
}

func (ProposalDTO) TableName() string {
	return "proposals"
}

func fromDomain(p *proposal.Proposal) ProposalDTO {
	s := p.Snapshot()

	var submittedAt *time.Time
	if !s.SubmittedAt.IsZero() {
		at := s.SubmittedAt.UTC()
		submittedAt = &at
	}

	return ProposalDTO{
		ID:            s.ID.Bytes(),
		OpportunityID: s.OpportunityID.Bytes(),
		CompanyID:     s.CompanyID.Bytes(),
		PriceAmount:   s.PriceAmount,
		PriceCurrency: s.PriceCurrency,
		DeliveryDays:  s.DeliveryDays,
		CoverLetter:   s.CoverLetter,
		Status:        s.Status,
		Reason:        s.Reason,
		SubmittedAt:   submittedAt,
		CreatedAt:     s.CreatedAt.UTC(),
		UpdatedAt:     s.UpdatedAt.UTC(),
		Version:       s.Version,
	}
}

func toDomain(dto ProposalDTO) (*proposal.Proposal, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	opportunityID, err := kernel.UUIDFromBytes(dto.OpportunityID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	var submittedAt time.Time
	if dto.SubmittedAt != nil {
		submittedAt = dto.SubmittedAt.UTC()
	}

	return proposal.Restore(proposal.Snapshot{
		ID:            id,
		OpportunityID: opportunityID,
		CompanyID:     companyID,
		PriceAmount:   dto.PriceAmount,
		PriceCurrency: dto.PriceCurrency,
		DeliveryDays:  dto.DeliveryDays,
		CoverLetter:   dto.CoverLetter,
		Status:        dto.Status,
		Reason:        dto.Reason,
		SubmittedAt:   submittedAt,
		CreatedAt:     dto.CreatedAt.UTC(),
		UpdatedAt:     dto.UpdatedAt.UTC(),
		Version:       dto.Version,
	})
}

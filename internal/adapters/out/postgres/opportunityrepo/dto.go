// Package opportunityrepo persists Opportunity aggregates with GORM. Rows
// carry a version column used for optimistic concurrency.
package opportunityrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/opportunity"

	"github.com/google/uuid"
)

// OpportunityDTO is the row layout of the opportunities table. Statuses are
// stored by name so the table stays readable and survives reordering of the
// status constants.
type OpportunityDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID            uuid.UUID `gorm:"type:uuid;index"`
	Title              string    `gorm:"size:200"`
	Description        string
	BudgetAmount       int64
	BudgetCurrency     string     `gorm:"size:3"`
	Deadline           time.Time  `gorm:"index"`
	Status             string     `gorm:"size:32;index"`
	AwardedProposalID  *uuid.UUID `gorm:"type:uuid"`
	CancellationReason string
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
	Version            int64     `gorm:"not null;default:0"`
}

func (OpportunityDTO) TableName() string {
	return "opportunities"
}

func fromDomain(o *opportunity.Opportunity) OpportunityDTO {
	s := o.Snapshot()

	var awarded *uuid.UUID
	if s.AwardedProposalID != nil {
		raw := s.AwardedProposalID.Bytes()
		awarded = &raw
	}

	return OpportunityDTO{
		ID:                 s.ID.Bytes(),
		OwnerID:            s.OwnerID.Bytes(),
		Title:              s.Title,
		Description:        s.Description,
		BudgetAmount:       s.BudgetAmount,
		BudgetCurrency:     s.BudgetCurrency,
		Deadline:           s.Deadline.UTC(),
		Status:             s.Status,
		AwardedProposalID:  awarded,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt.UTC(),
		UpdatedAt:          s.UpdatedAt.UTC(),
		Version:            s.Version,
	}
}

func toDomain(dto OpportunityDTO) (*opportunity.Opportunity, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var awarded *kernel.UUID
	if dto.AwardedProposalID != nil {
		pID, err := kernel.UUIDFromBytes(dto.AwardedProposalID[:])
		if err != nil {
			return nil, err
		}
		awarded = &pID
	}

	return opportunity.Restore(opportunity.Snapshot{
		ID:                 id,
		OwnerID:            ownerID,
		Title:              dto.Title,
		Description:        dto.Description,
		BudgetAmount:       dto.BudgetAmount,
		BudgetCurrency:     dto.BudgetCurrency,
		Deadline:           dto.Deadline.UTC(),
		Status:             dto.Status,
		AwardedProposalID:  awarded,
		CancellationReason: dto.CancellationReason,
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
		Version:            dto.Version,
	})
}

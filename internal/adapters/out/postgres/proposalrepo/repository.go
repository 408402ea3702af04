package proposalrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/proposal"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProposalRepository implements ports.ProposalRepository using GORM.
type GormProposalRepository struct {
	db *gorm.DB
}

func NewGormProposalRepository(db *gorm.DB) *GormProposalRepository {
	return &GormProposalRepository{db: db}
}

func (r *GormProposalRepository) Add(ctx context.Context, aggregate *proposal.Proposal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update is a compare-and-swap on the version column.
func (r *GormProposalRepository) Update(ctx context.Context, aggregate *proposal.Proposal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&ProposalDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&ProposalDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("proposal", aggregate.ID().String())
	}
	return errs.NewVersionConflictError(proposal.AggregateType, aggregate.ID(), aggregate.Version())
}

func (r *GormProposalRepository) Get(ctx context.Context, id kernel.UUID) (*proposal.Proposal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProposalDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("proposal", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOpportunity retrieves every proposal of an opportunity in the
// order they were created.
func (r *GormProposalRepository) GetAllByOpportunity(
	ctx context.Context,
	opportunityID kernel.UUID,
) ([]*proposal.Proposal, error) {
	if err := opportunityID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ProposalDTO
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	result := make([]*proposal.Proposal, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	return result, nil
}

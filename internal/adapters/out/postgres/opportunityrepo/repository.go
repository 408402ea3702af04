package opportunityrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/opportunity"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOpportunityRepository implements ports.OpportunityRepository using GORM.
type GormOpportunityRepository struct {
	db *gorm.DB
}

func NewGormOpportunityRepository(db *gorm.DB) *GormOpportunityRepository {
	return &GormOpportunityRepository{db: db}
}

// Add saves a new opportunity.
func (r *GormOpportunityRepository) Add(ctx context.Context, aggregate *opportunity.Opportunity) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the aggregate if the stored version still equals
// aggregate.Version() and bumps the stored version.
func (r *GormOpportunityRepository) Update(ctx context.Context, aggregate *opportunity.Opportunity) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&OpportunityDTO{}).
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
	if err := r.db.WithContext(ctx).Model(&OpportunityDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("opportunity", aggregate.ID().String())
	}
	return errs.NewVersionConflictError(opportunity.AggregateType, aggregate.ID(), aggregate.Version())
}

// Get retrieves an opportunity by ID.
func (r *GormOpportunityRepository) Get(ctx context.Context, id kernel.UUID) (*opportunity.Opportunity, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OpportunityDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("opportunity", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOverdue retrieves Published opportunities whose deadline is not after
// now, oldest deadline first.
func (r *GormOpportunityRepository) GetAllOverdue(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*opportunity.Opportunity, error) {
	var dtos []OpportunityDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND deadline <= ?", opportunity.Published.String(), now.UTC()).
		Order("deadline, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	result := make([]*opportunity.Opportunity, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}

	return result, nil
}

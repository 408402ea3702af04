package sourcingrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSourcingEventRepository implements ports.SourcingEventRepository.
type GormSourcingEventRepository struct {
	db *gorm.DB
}

func NewGormSourcingEventRepository(db *gorm.DB) *GormSourcingEventRepository {
	return &GormSourcingEventRepository{db: db}
}

func (r *GormSourcingEventRepository) Add(ctx context.Context, aggregate *sourcing.Event) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormSourcingEventRepository) Update(ctx context.Context, aggregate *sourcing.Event) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&SourcingEventDTO{}).
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
	if err := r.db.WithContext(ctx).Model(&SourcingEventDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("sourcing event", aggregate.ID().String())
	}
	return errs.NewVersionConflictError(sourcing.AggregateType, aggregate.ID(), aggregate.Version())
}

func (r *GormSourcingEventRepository) Get(ctx context.Context, id kernel.UUID) (*sourcing.Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SourcingEventDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sourcing event", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllDueForEvaluation retrieves Open events whose deadline is not after
// now, oldest deadline first.
func (r *GormSourcingEventRepository) GetAllDueForEvaluation(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*sourcing.Event, error) {
	var dtos []SourcingEventDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND deadline <= ?", sourcing.Open.String(), now.UTC()).
		Order("deadline, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	result := make([]*sourcing.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}

	return result, nil
}

package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sourcing"
)

// SourcingEventRepository persists sourcing events with the same version
// semantics as OpportunityRepository.
type SourcingEventRepository interface {
	Add(ctx context.Context, aggregate *sourcing.Event) error
	Update(ctx context.Context, aggregate *sourcing.Event) error
	Get(ctx context.Context, id kernel.UUID) (*sourcing.Event, error)

	// GetAllDueForEvaluation returns up to limit Open events whose deadline
	// is not after now.
	GetAllDueForEvaluation(ctx context.Context, now time.Time, limit int) ([]*sourcing.Event, error)
}

// Package ports defines the contracts between the marketplace core and its
// infrastructure: repositories with optimistic concurrency, the transactional
// outbox and the event publisher.
package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/opportunity"
)

// OpportunityRepository persists Opportunity aggregates.
//
// Update is a compare-and-swap: it succeeds only when the stored version
// still equals aggregate.Version(), and then advances it by one. Otherwise
// it returns an errs.VersionConflictError, or errs.ObjectNotFoundError when
// the row is gone.
type OpportunityRepository interface {
	// Add stores a new opportunity at version 0.
	Add(ctx context.Context, aggregate *opportunity.Opportunity) error

	// Update saves a mutated opportunity using its loaded version as the
	// expected version.
	Update(ctx context.Context, aggregate *opportunity.Opportunity) error

	// Get returns errs.ObjectNotFoundError for unknown IDs.
	Get(ctx context.Context, id kernel.UUID) (*opportunity.Opportunity, error)

	// GetAllOverdue returns up to limit Published opportunities whose
	// deadline is not after now, oldest deadline first.
	GetAllOverdue(ctx context.Context, now time.Time, limit int) ([]*opportunity.Opportunity, error)
}

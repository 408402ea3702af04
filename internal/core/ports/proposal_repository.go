package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/proposal"
)

// ProposalRepository persists Proposal aggregates with the same version
// semantics as OpportunityRepository.
type ProposalRepository interface {
	Add(ctx context.Context, aggregate *proposal.Proposal) error
	Update(ctx context.Context, aggregate *proposal.Proposal) error
	Get(ctx context.Context, id kernel.UUID) (*proposal.Proposal, error)

	// GetAllByOpportunity returns every proposal of an opportunity ordered
	// by creation time.
	GetAllByOpportunity(ctx context.Context, opportunityID kernel.UUID) ([]*proposal.Proposal, error)
}

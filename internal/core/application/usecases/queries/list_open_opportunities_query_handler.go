package queries

import (
	"context"

	"marketplace/internal/core/domain/model/opportunity"
	"marketplace/internal/core/domain/model/proposal"

	"gorm.io/gorm"
)

type ListOpenOpportunitiesQueryHandler struct {
	db *gorm.DB
}

func NewListOpenOpportunitiesQueryHandler(db *gorm.DB) ListOpenOpportunitiesQueryHandler {
	return ListOpenOpportunitiesQueryHandler{db: db}
}

// Handle lists opportunities in the Published status. Overdue ones are
// included until the expiry job moves them on.
func (h ListOpenOpportunitiesQueryHandler) Handle(
	ctx context.Context,
	query ListOpenOpportunitiesQuery,
) ([]OpportunityView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.owner_id,
			o.title,
			o.description,
			o.budget_amount,
			o.budget_currency,
			o.deadline,
			o.status,
			o.awarded_proposal_id,
			o.cancellation_reason,
			o.created_at,
			o.updated_at,
			(SELECT COUNT(*) FROM proposals p
				WHERE p.opportunity_id = o.id AND p.status <> ?) AS proposal_count
		FROM opportunities o
		WHERE o.status = ?
		ORDER BY o.deadline, o.id
		LIMIT ? OFFSET ?
	`, proposal.Draft.String(), opportunity.Published.String(), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OpportunityView, 0)
	for rows.Next() {
		view, scanErr := scanOpportunityView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

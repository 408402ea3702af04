package queries

import (
	"context"
	"database/sql"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/proposal"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListProposalsByOpportunityQueryHandler struct {
	db *gorm.DB
}

func NewListProposalsByOpportunityQueryHandler(db *gorm.DB) ListProposalsByOpportunityQueryHandler {
	return ListProposalsByOpportunityQueryHandler{db: db}
}

// Handle returns an empty slice for an unknown opportunity.
func (h ListProposalsByOpportunityQueryHandler) Handle(
	ctx context.Context,
	query ListProposalsByOpportunityQuery,
) ([]ProposalView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	// The excluded status never matches when drafts are requested.
	excluded := proposal.Draft.String()
	if query.IncludeDrafts() {
		excluded = ""
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			opportunity_id,
			company_id,
			price_amount,
			price_currency,
			delivery_days,
			cover_letter,
			status,
			reason,
			submitted_at,
			created_at
		FROM proposals
		WHERE opportunity_id = ? AND status <> ?
		ORDER BY created_at, id
	`, query.OpportunityID().Bytes(), excluded).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ProposalView, 0)
	for rows.Next() {
		var (
			view                         ProposalView
			id, opportunityID, companyID uuid.UUID
			amount                       int64
			currency                     string
			submittedAt                  sql.NullTime
		)

		err = rows.Scan(
			&id,
			&opportunityID,
			&companyID,
			&amount,
			&currency,
			&view.DeliveryDays,
			&view.CoverLetter,
			&view.Status,
			&view.Reason,
			&submittedAt,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if view.OpportunityID, err = toKernelUUID(opportunityID); err != nil {
			return nil, err
		}
		if view.CompanyID, err = toKernelUUID(companyID); err != nil {
			return nil, err
		}
		if view.Price, err = kernel.NewMoney(amount, currency); err != nil {
			return nil, err
		}
		view.SubmittedAt = toOptionalTime(submittedAt)
		view.CreatedAt = view.CreatedAt.UTC()

		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

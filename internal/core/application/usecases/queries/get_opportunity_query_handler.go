package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/proposal"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpportunityQueryHandler reads a single opportunity view.
type GetOpportunityQueryHandler struct {
	db *gorm.DB
}

func NewGetOpportunityQueryHandler(db *gorm.DB) GetOpportunityQueryHandler {
	return GetOpportunityQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError when no opportunity has the ID.
// Draft proposals are not counted.
func (h GetOpportunityQueryHandler) Handle(
	ctx context.Context,
	query GetOpportunityQuery,
) (OpportunityView, error) {
	if err := query.Validate(); err != nil {
		return OpportunityView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
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
		WHERE o.id = ?
	`, proposal.Draft.String(), query.OpportunityID().Bytes()).Row()

	view, err := scanOpportunityView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OpportunityView{}, errs.NewObjectNotFoundError("opportunity", query.OpportunityID().String())
	}
	return view, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOpportunityView(row scanner) (OpportunityView, error) {
	var (
		view        OpportunityView
		id, ownerID uuid.UUID
		awarded     uuid.NullUUID
		amount      int64
		currency    string
	)

	err := row.Scan(
		&id,
		&ownerID,
		&view.Title,
		&view.Description,
		&amount,
		&currency,
		&view.Deadline,
		&view.Status,
		&awarded,
		&view.CancellationReason,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.ProposalCount,
	)
	if err != nil {
		return OpportunityView{}, err
	}

	if view.ID, err = toKernelUUID(id); err != nil {
		return OpportunityView{}, err
	}
	if view.OwnerID, err = toKernelUUID(ownerID); err != nil {
		return OpportunityView{}, err
	}
	if view.AwardedProposalID, err = toOptionalUUID(awarded); err != nil {
		return OpportunityView{}, err
	}
	if view.Budget, err = kernel.NewMoney(amount, currency); err != nil {
		return OpportunityView{}, err
	}
	view.Deadline = view.Deadline.UTC()
	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()

	return view, nil
}

package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetSourcingEventQueryHandler struct {
	db *gorm.DB
}

func NewGetSourcingEventQueryHandler(db *gorm.DB) GetSourcingEventQueryHandler {
	return GetSourcingEventQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError when no sourcing event has the ID.
func (h GetSourcingEventQueryHandler) Handle(
	ctx context.Context,
	query GetSourcingEventQuery,
) (SourcingEventView, error) {
	if err := query.Validate(); err != nil {
		return SourcingEventView{}, err
	}

	var (
		view            SourcingEventView
		id, ownerID     uuid.UUID
		awarded         uuid.NullUUID
		invited         []byte
		startsAt, dueAt sql.NullTime
	)

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			owner_id,
			event_type,
			title,
			description,
			visibility,
			invited_suppliers,
			duration_days,
			status,
			round,
			extensions,
			starts_at,
			deadline,
			awarded_supplier_id,
			cancellation_reason,
			created_at,
			updated_at
		FROM sourcing_events
		WHERE id = ?
	`, query.EventID().Bytes()).Row().Scan(
		&id,
		&ownerID,
		&view.Type,
		&view.Title,
		&view.Description,
		&view.Visibility,
		&invited,
		&view.DurationDays,
		&view.Status,
		&view.Round,
		&view.Extensions,
		&startsAt,
		&dueAt,
		&awarded,
		&view.CancellationReason,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return SourcingEventView{}, errs.NewObjectNotFoundError("sourcing event", query.EventID().String())
	}
	if err != nil {
		return SourcingEventView{}, err
	}

	if view.ID, err = toKernelUUID(id); err != nil {
		return SourcingEventView{}, err
	}
	if view.OwnerID, err = toKernelUUID(ownerID); err != nil {
		return SourcingEventView{}, err
	}
	if view.AwardedSupplierID, err = toOptionalUUID(awarded); err != nil {
		return SourcingEventView{}, err
	}

	view.InvitedSuppliers = make([]kernel.UUID, 0)
	if len(invited) > 0 {
		if err = json.Unmarshal(invited, &view.InvitedSuppliers); err != nil {
			return SourcingEventView{}, fmt.Errorf("decode invited suppliers of %s: %w", view.ID, err)
		}
		if view.InvitedSuppliers == nil {
			view.InvitedSuppliers = make([]kernel.UUID, 0)
		}
	}

	view.StartsAt = toOptionalTime(startsAt)
	view.Deadline = toOptionalTime(dueAt)
	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()

	return view, nil
}

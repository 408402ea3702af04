package sourcing

import (
	"errors"
	"slices"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Snapshot is the serializable form of an Event.
type Snapshot struct {
	ID                 kernel.UUID   `json:"id"`
	OwnerID            kernel.UUID   `json:"ownerId"`
	Type               string        `json:"type"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Visibility         string        `json:"visibility"`
	InvitedSuppliers   []kernel.UUID `json:"invitedSuppliers"`
	DurationDays       int           `json:"durationDays"`
	Status             string        `json:"status"`
	Round              int           `json:"round"`
	Extensions         int           `json:"extensions"`
	StartsAt           time.Time     `json:"startsAt"`
	Deadline           time.Time     `json:"deadline"`
	AwardedSupplierID  *kernel.UUID  `json:"awardedSupplierId,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
	Version            int64         `json:"version"`
}

func (e *Event) Snapshot() Snapshot {
	s := Snapshot{
		ID:                 e.id,
		OwnerID:            e.ownerID,
		Type:               e.eventType.String(),
		Title:              e.title,
		Description:        e.description,
		Visibility:         e.visibility.String(),
		InvitedSuppliers:   slices.Clone(e.invitedSuppliers),
		DurationDays:       e.durationDays,
		Status:             e.status.String(),
		Round:              e.round,
		Extensions:         e.extensions,
		StartsAt:           e.startsAt,
		Deadline:           e.deadline,
		CancellationReason: e.cancellationReason,
		CreatedAt:          e.createdAt,
		UpdatedAt:          e.updatedAt,
		Version:            e.version,
	}
	if id, ok := e.AwardedSupplierID(); ok {
		s.AwardedSupplierID = &id
	}
	return s
}

// Restore rebuilds an Event loaded from storage.
func Restore(s Snapshot) (*Event, error) {
	status, err := ParseStatus(s.Status)
	if err != nil {
		return nil, err
	}
	eventType, err := ParseEventType(s.Type)
	if err != nil {
		return nil, err
	}
	visibility, err := ParseVisibility(s.Visibility)
	if err != nil {
		return nil, err
	}

	e := &Event{
		title:              s.Title,
		description:        s.Description,
		status:             status,
		round:              s.Round,
		extensions:         s.Extensions,
		startsAt:           s.StartsAt,
		deadline:           s.Deadline,
		cancellationReason: s.CancellationReason,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		version:            s.Version,
		guard:              guard.NewConstructorGuard(),
	}
	if err = errors.Join(
		e.setID(s.ID),
		e.setOwnerID(s.OwnerID),
		e.setEventType(eventType),
		e.setVisibility(visibility),
		e.setInvitedSuppliers(s.InvitedSuppliers),
		e.setDurationDays(s.DurationDays),
	); err != nil {
		return nil, err
	}

	if s.Round < 1 {
		return nil, errs.NewValueIsOutOfRangeError("round", s.Round, 1, "policy maximum")
	}
	if s.AwardedSupplierID != nil {
		e.awardedSupplierID = *s.AwardedSupplierID
	}
	if (status == Awarded || status == Closed) && e.awardedSupplierID.Validate() != nil {
		return nil, errs.NewValueIsRequiredError("awardedSupplierId")
	}

	return e, nil
}

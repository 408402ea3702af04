// Package sourcingrepo persists sourcing events with GORM. Invited suppliers
// are kept in a JSON column so the same schema works on PostgreSQL and
// SQLite.
package sourcingrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sourcing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SourcingEventDTO is the row layout of the sourcing_events table.
type SourcingEventDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID            uuid.UUID `gorm:"type:uuid;index"`
	EventType          string    `gorm:"size:32"`
	Title              string    `gorm:"size:200"`
	Description        string
	Visibility         string `gorm:"size:16"`
	InvitedSuppliers   datatypes.JSON
	DurationDays       int
	Status             string `gorm:"size:32;index"`
	Round              int
	Extensions         int
	StartsAt           *time.Time
	Deadline           *time.Time `gorm:"index"`
	AwardedSupplierID  *uuid.UUID `gorm:"type:uuid"`
	CancellationReason string
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
	Version            int64     `gorm:"not null;default:0"`
}

func (SourcingEventDTO) TableName() string {
	return "sourcing_events"
}

func fromDomain(e *sourcing.Event) (SourcingEventDTO, error) {
	s := e.Snapshot()

	invited, err := json.Marshal(s.InvitedSuppliers)
	if err != nil {
		return SourcingEventDTO{}, fmt.Errorf("encode invited suppliers: %w", err)
	}

	var awarded *uuid.UUID
	if s.AwardedSupplierID != nil {
		raw := s.AwardedSupplierID.Bytes()
		awarded = &raw
	}

	return SourcingEventDTO{
		ID:                 s.ID.Bytes(),
		OwnerID:            s.OwnerID.Bytes(),
		EventType:          s.Type,
		Title:              s.Title,
		Description:        s.Description,
		Visibility:         s.Visibility,
		InvitedSuppliers:   datatypes.JSON(invited),
		DurationDays:       s.DurationDays,
		Status:             s.Status,
		Round:              s.Round,
		Extensions:         s.Extensions,
		StartsAt:           optionalTime(s.StartsAt),
		Deadline:           optionalTime(s.Deadline),
		AwardedSupplierID:  awarded,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt.UTC(),
		UpdatedAt:          s.UpdatedAt.UTC(),
		Version:            s.Version,
	}, nil
}

func toDomain(dto SourcingEventDTO) (*sourcing.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var invited []kernel.UUID
	if len(dto.InvitedSuppliers) > 0 {
		if err := json.Unmarshal(dto.InvitedSuppliers, &invited); err != nil {
			return nil, fmt.Errorf("decode invited suppliers of %s: %w", id, err)
		}
	}

	var awarded *kernel.UUID
	if dto.AwardedSupplierID != nil {
		sID, err := kernel.UUIDFromBytes(dto.AwardedSupplierID[:])
		if err != nil {
			return nil, err
		}
		awarded = &sID
	}

	return sourcing.Restore(sourcing.Snapshot{
		ID:                 id,
		OwnerID:            ownerID,
		Type:               dto.EventType,
		Title:              dto.Title,
		Description:        dto.Description,
		Visibility:         dto.Visibility,
		InvitedSuppliers:   invited,
		DurationDays:       dto.DurationDays,
		Status:             dto.Status,
		Round:              dto.Round,
		Extensions:         dto.Extensions,
		StartsAt:           derefTime(dto.StartsAt),
		Deadline:           derefTime(dto.Deadline),
		AwardedSupplierID:  awarded,
		CancellationReason: dto.CancellationReason,
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
		Version:            dto.Version,
	})
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

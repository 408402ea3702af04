// Package outboxrepo stores domain events in the outbox table. Events are
// appended in the transaction that changed their aggregate and relayed to the
// broker later.
package outboxrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MessageDTO is a row of the outbox table. Seq keeps insertion order,
// which timestamps alone cannot since one mutation records several events at
// the same instant.
type MessageDTO struct {
	Seq           uint64    `gorm:"primaryKey;autoIncrement"`
	ID            uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	EventType     string    `gorm:"size:64"`
	AggregateType string    `gorm:"size:64"`
	AggregateID   uuid.UUID `gorm:"type:uuid;index"`
	OccurredAt    time.Time
	Payload       datatypes.JSON
	DispatchedAt  *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromEvent(id kernel.UUID, event lifecycle.DomainEvent) (MessageDTO, error) {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return MessageDTO{}, fmt.Errorf("encode %s payload: %w", event.Type(), err)
	}

	return MessageDTO{
		ID:            id.Bytes(),
		EventType:     event.Type(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID().Bytes(),
		OccurredAt:    event.OccurredAt().UTC(),
		Payload:       datatypes.JSON(payload),
	}, nil
}

func toMessage(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	payload := map[string]any{}
	if len(dto.Payload) > 0 {
		if err := json.Unmarshal(dto.Payload, &payload); err != nil {
			return ports.OutboxMessage{}, fmt.Errorf("decode payload of message %s: %w", id, err)
		}
	}

	return ports.OutboxMessage{
		ID:            id,
		EventType:     dto.EventType,
		AggregateType: dto.AggregateType,
		AggregateID:   aggregateID,
		OccurredAt:    dto.OccurredAt.UTC(),
		Payload:       payload,
	}, nil
}

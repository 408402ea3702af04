package lifecycle

import (
	"maps"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// DomainEvent is an immutable record of a successful transition.
type DomainEvent struct {
	eventType     string
	aggregateType string
	aggregateID   kernel.UUID
	occurredAt    time.Time
	payload       map[string]any
}

// NewDomainEvent copies payload so later changes by the caller are not observed.
func NewDomainEvent(
	eventType, aggregateType string,
	aggregateID kernel.UUID,
	occurredAt time.Time,
	payload map[string]any,
) DomainEvent {
	return DomainEvent{
		eventType:     eventType,
		aggregateType: aggregateType,
		aggregateID:   aggregateID,
		occurredAt:    occurredAt,
		payload:       maps.Clone(payload),
	}
}

// Type returns the event tag, e.g. "Published".
func (e DomainEvent) Type() string {
	return e.eventType
}

func (e DomainEvent) AggregateType() string {
	return e.aggregateType
}

func (e DomainEvent) AggregateID() kernel.UUID {
	return e.aggregateID
}

func (e DomainEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// Payload returns a copy of the event attributes.
func (e DomainEvent) Payload() map[string]any {
	if e.payload == nil {
		return map[string]any{}
	}
	return maps.Clone(e.payload)
}

// Recorder collects the events of a single mutation in the order they are
// recorded. Every event shares the aggregate identity and timestamp given to
// NewRecorder.
type Recorder struct {
	aggregateType string
	aggregateID   kernel.UUID
	at            time.Time
	events        []DomainEvent
}

func NewRecorder(aggregateType string, aggregateID kernel.UUID, at time.Time) *Recorder {
	return &Recorder{
		aggregateType: aggregateType,
		aggregateID:   aggregateID,
		at:            at,
	}
}

// Record appends an event tagged eventType.
func (r *Recorder) Record(eventType string, payload map[string]any) {
	r.events = append(r.events, NewDomainEvent(eventType, r.aggregateType, r.aggregateID, r.at, payload))
}

// Events returns the recorded events. The slice is a copy.
func (r *Recorder) Events() []DomainEvent {
	return append([]DomainEvent(nil), r.events...)
}

func (r *Recorder) Len() int {
	return len(r.events)
}

// Package events publishes domain events after successful writes.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	OrderCreated   = "order.created"
	OrderUpdated   = "order.updated"
	OrderDeleted   = "order.deleted"
	PaymentCreated = "payment.created"
	PaymentUpdated = "payment.updated"
	CartItemAdded  = "cart.item_added"
)

// Event is the envelope written to the broker.
type Event struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	AggregateID string      `json:"aggregateId"`
	OccurredAt  time.Time   `json:"occurredAt"`
	Payload     interface{} `json:"payload,omitempty"`
}

// New stamps a new event.
func New(eventType, aggregateID string, payload interface{}) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

// Publisher sends events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, ...Event) error { return nil }
func (Noop) Close() error                            { return nil }

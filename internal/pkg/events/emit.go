package events

import (
	"context"
	"time"

	"storefront/internal/pkg/logger"
)

const publishTimeout = 2 * time.Second

// Emit publishes ev without failing the caller: the write it describes already happened.
// The request context is detached so a client disconnect does not drop the event.
func Emit(ctx context.Context, pub Publisher, log logger.Logger, ev Event) {
	if pub == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := pub.Publish(pubCtx, ev); err != nil {
		log.Error("failed to publish "+ev.Type, err)
		return
	}
	log.Debug("event published", map[string]interface{}{"type": ev.Type, "aggregate_id": ev.AggregateID})
}

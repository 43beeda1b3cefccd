package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/events"
)

// publish stamps and emits an event. Dispatch failures never fail the originating request.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = dispatcher.Publish(ctx, event)
}

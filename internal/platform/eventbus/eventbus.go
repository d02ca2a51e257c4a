package eventbus

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Topic is the type for event topics.
type Topic string

// Event is a message passed on the bus.
type Event struct {
	ID         uuid.UUID
	Topic      Topic
	Payload    any
	OccurredAt time.Time
}

// Handler processes an event. Returned errors are logged by the bus.
type Handler func(ctx context.Context, event Event) error

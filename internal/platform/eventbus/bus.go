package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/philly/spacetraveling/internal/platform/logger"
)

// Bus manages subscriptions and dispatches events asynchronously.
type Bus struct {
	subscriptions map[Topic][]Handler
	mu            sync.RWMutex
	inflight      sync.WaitGroup
	logger        logger.Logger
}

// NewBus creates a new event bus.
func NewBus(logger logger.Logger) *Bus {
	return &Bus{
		subscriptions: make(map[Topic][]Handler),
		logger:        logger,
	}
}

// Subscribe adds a handler for a topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[topic] = append(b.subscriptions[topic], handler)
}

// Publish hands the event to every subscriber of its topic, each in its own
// goroutine, and returns immediately. Handlers run on a context detached from
// ctx's cancellation: publishers are usually HTTP requests that finish first.
func (b *Bus) Publish(ctx context.Context, event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	b.mu.RLock()
	handlers := b.subscriptions[event.Topic]
	b.mu.RUnlock()

	detached := context.WithoutCancel(ctx)
	for _, handler := range handlers {
		b.inflight.Add(1)
		go func(h Handler) {
			defer b.inflight.Done()
			if err := h(detached, event); err != nil {
				b.logger.Error(detached, "event handler failed",
					"topic", event.Topic,
					"event_id", event.ID,
					"error", err,
				)
			}
		}(handler)
	}
}

// Wait blocks until every handler started by Publish has returned, or ctx is
// done. Used on shutdown and in tests.
func (b *Bus) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

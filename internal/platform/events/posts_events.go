package events

import (
	"time"

	"github.com/philly/spacetraveling/internal/platform/eventbus"
)

// Event topics for generated post pages
const (
	RevalidationRequestedTopic eventbus.Topic = "posts.revalidation_requested"
	PageRegeneratedTopic       eventbus.Topic = "posts.page_regenerated"
	PageRemovedTopic           eventbus.Topic = "posts.page_removed"
)

// RevalidationRequestedEvent is published when a stale snapshot was served
// and the page should be rebuilt in the background.
type RevalidationRequestedEvent struct {
	Slug        string
	SnapshotAge time.Duration
	RequestedAt time.Time
}

// PageRegeneratedEvent is published after a snapshot has been rebuilt and saved.
type PageRegeneratedEvent struct {
	Slug           string
	ReadingMinutes int
	GeneratedAt    time.Time
}

// PageRemovedEvent is published when regeneration found the post gone and the
// snapshot was dropped.
type PageRemovedEvent struct {
	Slug       string
	OccurredAt time.Time
}

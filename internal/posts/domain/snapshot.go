package domain

import (
	"time"
)

// Snapshot is a statically generated post page.
type Snapshot struct {
	Slug        string
	Page        PostPage
	GeneratedAt time.Time
}

// Age is how long ago the snapshot was generated.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.GeneratedAt)
}

// IsStale reports whether the snapshot is older than the revalidation
// interval. A non-positive interval never goes stale.
func (s Snapshot) IsStale(now time.Time, interval time.Duration) bool {
	if interval <= 0 {
		return false
	}
	return s.Age(now) > interval
}

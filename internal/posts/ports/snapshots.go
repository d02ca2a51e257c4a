package ports

import (
	"context"
	"errors"

	"github.com/philly/spacetraveling/internal/posts/domain"
)

// ErrSnapshotNotFound is returned when no page has been generated for a slug.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore persists generated post pages between revalidations.
type SnapshotStore interface {
	Get(ctx context.Context, slug string) (*domain.Snapshot, error)

	// Save inserts or replaces the snapshot for snap.Slug.
	Save(ctx context.Context, snap domain.Snapshot) error

	// SaveAll replaces a batch of snapshots atomically.
	SaveAll(ctx context.Context, snaps []domain.Snapshot) error

	// Delete removes a snapshot. Deleting a missing slug is not an error.
	Delete(ctx context.Context, slug string) error
}

// SnapshotExporter publishes generated pages outside the service, e.g. to
// object storage behind a CDN.
type SnapshotExporter interface {
	Export(ctx context.Context, snap domain.Snapshot) error
	Remove(ctx context.Context, slug string) error
}

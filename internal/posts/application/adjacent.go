package application

import (
	"context"
	"fmt"

	"github.com/philly/spacetraveling/internal/posts/ports"
)

// QueryAdjacentFinder finds navigation candidates with two independent
// single-result queries anchored on the current document: one ordered by
// first publication date ascending ("previous") and one ordered by last
// publication date descending ("next"). Each returns whatever the backend
// places after the anchor in its own ordering.
type QueryAdjacentFinder struct {
	backend      ports.ContentBackend
	documentType string
}

// NewQueryAdjacentFinder creates the two-query adjacent finder.
func NewQueryAdjacentFinder(backend ports.ContentBackend, settings Settings) *QueryAdjacentFinder {
	return &QueryAdjacentFinder{
		backend:      backend,
		documentType: settings.DocumentType,
	}
}

// FindAdjacent runs the previous query and then the next query.
func (f *QueryAdjacentFinder) FindAdjacent(ctx context.Context, anchorID string) (ports.AdjacentPages, error) {
	prev, err := f.backend.Query(ctx, ports.Query{
		DocumentType: f.documentType,
		PageSize:     1,
		After:        anchorID,
		Orderings:    []ports.Ordering{{Field: ports.OrderFirstPublicationDate}},
	})
	if err != nil {
		return ports.AdjacentPages{}, fmt.Errorf("QueryAdjacentFinder.FindAdjacent previous: %w", err)
	}

	next, err := f.backend.Query(ctx, ports.Query{
		DocumentType: f.documentType,
		PageSize:     1,
		After:        anchorID,
		Orderings:    []ports.Ordering{{Field: ports.OrderLastPublicationDate, Desc: true}},
	})
	if err != nil {
		return ports.AdjacentPages{}, fmt.Errorf("QueryAdjacentFinder.FindAdjacent next: %w", err)
	}

	return ports.AdjacentPages{Previous: prev, Next: next}, nil
}

var _ ports.AdjacentFinder = (*QueryAdjacentFinder)(nil)

package ports

import "context"

// AdjacentPages holds the raw query results used to build navigation. Either
// page may be nil or empty.
type AdjacentPages struct {
	Previous *RawPage
	Next     *RawPage
}

// AdjacentFinder locates the posts surrounding an anchor document.
type AdjacentFinder interface {
	FindAdjacent(ctx context.Context, anchorID string) (AdjacentPages, error)
}

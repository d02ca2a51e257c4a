package domain

// Page is one state of a cursor-paginated listing. An empty NextCursor means
// there are no further pages.
type Page[T any] struct {
	NextCursor string
	Results    []T
}

// HasNext reports whether another page can be requested.
func (p Page[T]) HasNext() bool {
	return p.NextCursor != ""
}

// Merge appends incoming to current and adopts incoming's cursor.
//
// incoming is trusted to be the page current.NextCursor points at. Results
// are not deduplicated. Neither argument is modified and the returned
// Results never shares a backing array with current.
func Merge[T any](current, incoming Page[T]) Page[T] {
	results := make([]T, 0, len(current.Results)+len(incoming.Results))
	results = append(results, current.Results...)
	results = append(results, incoming.Results...)

	return Page[T]{
		NextCursor: incoming.NextCursor,
		Results:    results,
	}
}

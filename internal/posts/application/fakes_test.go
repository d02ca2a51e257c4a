package application_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

// mockLogger records warn and error messages.
type mockLogger struct {
	mu     sync.Mutex
	warns  []string
	errors []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, msg)
}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *mockLogger) warnings() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.warns...)
}

func (m *mockLogger) errorMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.errors...)
}

// fakeBackend is a ContentBackend driven by function fields. Unset functions
// fail the call.
type fakeBackend struct {
	mu      sync.Mutex
	queries []ports.Query
	cursors []string

	queryFn     func(q ports.Query) (*ports.RawPage, error)
	fetchPageFn func(cursor string) (*ports.RawPage, error)
	getByUIDFn  func(docType, uid, ref string) (*ports.RawDocument, error)
	getByIDFn   func(id, ref string) (*ports.RawDocument, error)
	pingFn      func() error
}

func (f *fakeBackend) Query(ctx context.Context, q ports.Query) (*ports.RawPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.queryFn == nil {
		return nil, fmt.Errorf("unexpected Query")
	}
	return f.queryFn(q)
}

func (f *fakeBackend) FetchPage(ctx context.Context, cursor string) (*ports.RawPage, error) {
	f.mu.Lock()
	f.cursors = append(f.cursors, cursor)
	f.mu.Unlock()
	if f.fetchPageFn == nil {
		return nil, fmt.Errorf("unexpected FetchPage")
	}
	return f.fetchPageFn(cursor)
}

func (f *fakeBackend) GetByUID(ctx context.Context, docType, uid, ref string) (*ports.RawDocument, error) {
	if f.getByUIDFn == nil {
		return nil, fmt.Errorf("unexpected GetByUID")
	}
	return f.getByUIDFn(docType, uid, ref)
}

func (f *fakeBackend) GetByID(ctx context.Context, id, ref string) (*ports.RawDocument, error) {
	if f.getByIDFn == nil {
		return nil, fmt.Errorf("unexpected GetByID")
	}
	return f.getByIDFn(id, ref)
}

func (f *fakeBackend) Ping(ctx context.Context) error {
	if f.pingFn == nil {
		return nil
	}
	return f.pingFn()
}

func (f *fakeBackend) recordedQueries() []ports.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ports.Query(nil), f.queries...)
}

func (f *fakeBackend) recordedCursors() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cursors...)
}

// fakeFinder returns fixed adjacent pages.
type fakeFinder struct {
	pages ports.AdjacentPages
	err   error
	calls []string
}

func (f *fakeFinder) FindAdjacent(ctx context.Context, anchorID string) (ports.AdjacentPages, error) {
	f.calls = append(f.calls, anchorID)
	return f.pages, f.err
}

// fakeStore is an in-memory SnapshotStore with injectable failures.
type fakeStore struct {
	mu      sync.Mutex
	snaps   map[string]domain.Snapshot
	getErr  error
	saveErr error
	saved   int
	deleted []string
	batches int
}

func newFakeStore(snaps ...domain.Snapshot) *fakeStore {
	s := &fakeStore{snaps: map[string]domain.Snapshot{}}
	for _, snap := range snaps {
		s.snaps[snap.Slug] = snap
	}
	return s
}

func (s *fakeStore) Get(ctx context.Context, slug string) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	snap, ok := s.snaps[slug]
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	return &snap, nil
}

func (s *fakeStore) Save(ctx context.Context, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snaps[snap.Slug] = snap
	s.saved++
	return nil
}

func (s *fakeStore) SaveAll(ctx context.Context, snaps []domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	for _, snap := range snaps {
		s.snaps[snap.Slug] = snap
	}
	s.batches++
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, slug)
	s.deleted = append(s.deleted, slug)
	return nil
}

func (s *fakeStore) snapshot(slug string) (domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[slug]
	return snap, ok
}

// fakeExporter records exported and removed slugs.
type fakeExporter struct {
	mu       sync.Mutex
	exported []string
	removed  []string
}

func (e *fakeExporter) Export(ctx context.Context, snap domain.Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exported = append(e.exported, snap.Slug)
	return nil
}

func (e *fakeExporter) Remove(ctx context.Context, slug string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removed = append(e.removed, slug)
	return nil
}

func strPtr(s string) *string { return &s }

// rawPost builds a post document the way the CMS returns it.
func rawPost(id, uid, title string) ports.RawDocument {
	return ports.RawDocument{
		ID:                   id,
		UID:                  uid,
		Type:                 "po",
		Href:                 "https://spacetraveling.cdn.prismic.io/api/v2/documents/search?ref=X&q=" + id,
		Tags:                 []string{"react"},
		FirstPublicationDate: strPtr("2021-03-15T19:25:28+0000"),
		LastPublicationDate:  strPtr("2021-03-25T19:27:35+0000"),
		Lang:                 "pt-br",
		Data: ports.RawPostData{
			Title:    title,
			Subtitle: "Subtitle of " + title,
			Author:   "Joseph Oliveira",
			Banner:   &ports.RawImage{URL: "https://images.prismic.io/spacetraveling/" + uid + ".png"},
			Content: []ports.RawSection{
				{
					Heading: strPtr("Proin et varius"),
					Body: []ports.RawRichTextBlock{
						{Type: "paragraph", Text: "Lorem ipsum dolor sit amet"},
					},
				},
			},
		},
	}
}

func rawPage(next string, docs ...ports.RawDocument) *ports.RawPage {
	page := &ports.RawPage{Page: 1, ResultsPerPage: len(docs), ResultsSize: len(docs), Results: docs}
	if next != "" {
		page.NextPage = &next
	}
	return page
}

var fixedNow = time.Date(2021, 4, 1, 12, 0, 0, 0, time.UTC)

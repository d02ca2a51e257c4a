package application

import (
	"context"

	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

// FeedUpdate is the listing state after a load-more attempt.
type FeedUpdate struct {
	Page domain.Page[domain.PostSummary]

	// Failed is set when the next page could not be fetched. Page is then the
	// state that was passed in, cursor included, so submitting it again
	// retries the same page.
	Failed bool
}

// CanLoadMore reports whether the listing should offer another load-more.
// A failed attempt hides it until the user asks again.
func (u FeedUpdate) CanLoadMore() bool {
	return u.Page.HasNext() && !u.Failed
}

// ListPosts fetches the first listing page.
func (s *PostsService) ListPosts(ctx context.Context) (domain.Page[domain.PostSummary], error) {
	raw, err := s.backend.Query(ctx, ports.Query{
		DocumentType: s.settings.DocumentType,
		Fetch:        []string{s.field("title"), s.field("subtitle"), s.field("author")},
		PageSize:     s.settings.ListingPageSize,
	})
	if err != nil {
		return domain.Page[domain.PostSummary]{}, s.unavailable(ctx, "failed to list posts", err)
	}

	return ToSummaryPage(raw), nil
}

// LoadMore fetches the page current.NextCursor points at and merges it into
// current. It never fails: a fetch error is logged and current comes back
// unchanged with Failed set.
func (s *PostsService) LoadMore(ctx context.Context, current domain.Page[domain.PostSummary]) FeedUpdate {
	if !current.HasNext() {
		return FeedUpdate{Page: current}
	}

	raw, err := s.backend.FetchPage(ctx, current.NextCursor)
	if err != nil {
		s.logger.Warn(ctx, "no more posts to load",
			"cursor", current.NextCursor,
			"loaded", len(current.Results),
			"error", err,
		)
		return FeedUpdate{Page: current, Failed: true}
	}

	return FeedUpdate{Page: domain.Merge(current, ToSummaryPage(raw))}
}

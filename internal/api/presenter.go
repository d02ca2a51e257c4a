package api

import (
	"time"

	"github.com/philly/spacetraveling/internal/platform/datefmt"
	"github.com/philly/spacetraveling/internal/platform/richtext"
	"github.com/philly/spacetraveling/internal/posts/domain"
)

// Presenter turns domain values into API shapes, rendering rich text and
// display dates on the way.
type Presenter struct {
	dates *datefmt.Formatter
	html  *richtext.Renderer
}

// NewPresenter creates a presenter
func NewPresenter(dates *datefmt.Formatter, html *richtext.Renderer) *Presenter {
	return &Presenter{dates: dates, html: html}
}

// PostsPage presents a listing page. failed marks a load-more attempt that
// could not fetch the next page.
func (p *Presenter) PostsPage(page domain.Page[domain.PostSummary], failed bool) PostsPage {
	results := make([]PostSummary, 0, len(page.Results))
	for _, s := range page.Results {
		results = append(results, p.summary(s))
	}

	var next *string
	if page.HasNext() {
		cursor := page.NextCursor
		next = &cursor
	}

	return PostsPage{
		NextPage:       next,
		Results:        results,
		CanLoadMore:    page.HasNext() && !failed,
		LoadMoreFailed: failed,
	}
}

// PostPage presents a post page. generatedAt is nil for live renders.
func (p *Presenter) PostPage(page domain.PostPage, generatedAt *time.Time) PostPage {
	post := page.Post

	content := make([]ContentSection, 0, len(post.Data.Content))
	for _, section := range post.Data.Content {
		blocks := richBlocks(section.Body)
		content = append(content, ContentSection{
			Heading: section.Heading,
			Body:    toBlocks(section.Body),
			HTML:    p.html.HTML(blocks),
			Text:    richtext.Text(blocks),
		})
	}

	return PostPage{
		Post: Post{
			UID:                  post.UID,
			FirstPublicationDate: post.FirstPublicationDate,
			LastPublicationDate:  post.LastPublicationDate,
			DisplayDate:          p.dates.ShortPtr(post.FirstPublicationDate),
			Data: PostData{
				Title:    post.Data.Title,
				Subtitle: post.Data.Subtitle,
				Author:   post.Data.Author,
				Banner:   Banner{URL: post.Data.BannerURL},
				Content:  content,
			},
		},
		Navigation: Navigation{
			Previous: p.navSummary(page.Navigation.Previous),
			Next:     p.navSummary(page.Navigation.Next),
		},
		ReadingMinutes: page.ReadingMinutes,
		Preview:        page.Preview,
		GeneratedAt:    generatedAt,
	}
}

// Snapshot presents a stored page.
func (p *Presenter) Snapshot(snap domain.Snapshot) PostPage {
	generatedAt := snap.GeneratedAt
	return p.PostPage(snap.Page, &generatedAt)
}

func (p *Presenter) summary(s domain.PostSummary) PostSummary {
	return PostSummary{
		UID:                  s.UID,
		FirstPublicationDate: s.FirstPublicationDate,
		DisplayDate:          p.dates.TitlePtr(s.FirstPublicationDate),
		Data: SummaryData{
			Title:    s.Title,
			Subtitle: s.Subtitle,
			Author:   s.Author,
		},
	}
}

// ToDomainPage converts the client's listing state back into a page.
func ToDomainPage(req LoadMoreRequest) domain.Page[domain.PostSummary] {
	results := make([]domain.PostSummary, 0, len(req.Results))
	for _, s := range req.Results {
		results = append(results, domain.PostSummary{
			UID:                  s.UID,
			FirstPublicationDate: s.FirstPublicationDate,
			Title:                s.Data.Title,
			Subtitle:             s.Data.Subtitle,
			Author:               s.Data.Author,
		})
	}

	page := domain.Page[domain.PostSummary]{Results: results}
	if req.NextPage != nil {
		page.NextCursor = *req.NextPage
	}
	return page
}

func (p *Presenter) navSummary(s *domain.PostSummary) *PostSummary {
	if s == nil {
		return nil
	}
	summary := p.summary(*s)
	return &summary
}

func toBlocks(blocks []domain.RichTextBlock) []RichTextBlock {
	out := make([]RichTextBlock, 0, len(blocks))
	for _, b := range blocks {
		spans := make([]RichTextSpan, 0, len(b.Spans))
		for _, s := range b.Spans {
			spans = append(spans, RichTextSpan{
				Start:  s.Start,
				End:    s.End,
				Type:   s.Type,
				URL:    s.URL,
				Target: s.Target,
				Label:  s.Label,
			})
		}
		out = append(out, RichTextBlock{
			Type:  b.Type,
			Text:  b.Text,
			Spans: spans,
			URL:   b.URL,
			Alt:   b.Alt,
		})
	}
	return out
}

func richBlocks(blocks []domain.RichTextBlock) []richtext.Block {
	out := make([]richtext.Block, 0, len(blocks))
	for _, b := range blocks {
		spans := make([]richtext.Span, 0, len(b.Spans))
		for _, s := range b.Spans {
			spans = append(spans, richtext.Span{
				Start:  s.Start,
				End:    s.End,
				Type:   s.Type,
				URL:    s.URL,
				Target: s.Target,
				Label:  s.Label,
			})
		}
		out = append(out, richtext.Block{
			Type:  b.Type,
			Text:  b.Text,
			Spans: spans,
			URL:   b.URL,
			Alt:   b.Alt,
		})
	}
	return out
}

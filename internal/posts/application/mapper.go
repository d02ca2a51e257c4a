package application

import (
	"time"

	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

// timestampLayout is the CMS timestamp format, e.g. 2021-03-15T19:25:28+0000.
const timestampLayout = "2006-01-02T15:04:05-0700"

// ToViewModel reshapes a raw post and the two adjacent-post query results
// into what the post page renders. Navigation takes the first result of each
// adjacent page; the results are not checked for actual adjacency.
func ToViewModel(raw *ports.RawDocument, prev, next *ports.RawPage) domain.PostView {
	return domain.PostView{
		Post: ToPost(raw),
		Navigation: domain.NavigationContext{
			Previous: firstSummary(prev),
			Next:     firstSummary(next),
		},
	}
}

// ToPost maps a raw document onto domain.Post, dropping CMS metadata.
func ToPost(raw *ports.RawDocument) domain.Post {
	if raw == nil {
		return domain.Post{}
	}

	post := domain.Post{
		UID:                  raw.UID,
		FirstPublicationDate: parseTimestamp(raw.FirstPublicationDate),
		LastPublicationDate:  parseTimestamp(raw.LastPublicationDate),
		Data: domain.PostData{
			Title:    raw.Data.Title,
			Subtitle: raw.Data.Subtitle,
			Author:   raw.Data.Author,
			Content:  make([]domain.ContentSection, 0, len(raw.Data.Content)),
		},
	}
	if raw.Data.Banner != nil {
		post.Data.BannerURL = raw.Data.Banner.URL
	}

	for _, section := range raw.Data.Content {
		post.Data.Content = append(post.Data.Content, domain.ContentSection{
			Heading: section.Heading,
			Body:    toBlocks(section.Body),
		})
	}

	return post
}

// ToSummary maps a raw document onto its listing fields. Listing queries
// fetch no content, so this is as cheap as mapping the fields directly.
func ToSummary(raw ports.RawDocument) domain.PostSummary {
	return ToPost(&raw).Summary()
}

// ToSummaryPage maps a raw listing page. A nil page maps to an empty,
// final page.
func ToSummaryPage(raw *ports.RawPage) domain.Page[domain.PostSummary] {
	if raw == nil {
		return domain.Page[domain.PostSummary]{Results: []domain.PostSummary{}}
	}

	results := make([]domain.PostSummary, 0, len(raw.Results))
	for _, doc := range raw.Results {
		results = append(results, ToSummary(doc))
	}

	return domain.Page[domain.PostSummary]{
		NextCursor: raw.NextCursor(),
		Results:    results,
	}
}

func firstSummary(page *ports.RawPage) *domain.PostSummary {
	if page == nil || len(page.Results) == 0 {
		return nil
	}
	summary := ToSummary(page.Results[0])
	return &summary
}

func toBlocks(raw []ports.RawRichTextBlock) []domain.RichTextBlock {
	blocks := make([]domain.RichTextBlock, 0, len(raw))
	for _, b := range raw {
		block := domain.RichTextBlock{
			Type: b.Type,
			Text: b.Text,
			URL:  b.URL,
		}
		if b.Alt != nil {
			block.Alt = *b.Alt
		}
		for _, s := range b.Spans {
			span := domain.RichTextSpan{Start: s.Start, End: s.End, Type: s.Type}
			if s.Data != nil {
				span.URL = s.Data.URL
				span.Target = s.Data.Target
				span.Label = s.Data.Label
			}
			block.Spans = append(block.Spans, span)
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// parseTimestamp accepts the CMS layout and RFC 3339; anything else, or
// nil, is treated as absent.
func parseTimestamp(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	for _, layout := range []string{timestampLayout, time.RFC3339} {
		if t, err := time.Parse(layout, *raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

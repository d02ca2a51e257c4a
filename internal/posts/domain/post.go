package domain

import (
	"time"
)

// Post is a blog post as handed to the renderer.
type Post struct {
	UID                  string
	FirstPublicationDate *time.Time
	LastPublicationDate  *time.Time
	Data                 PostData
}

// PostData is the editorial content of a post.
type PostData struct {
	Title     string
	Subtitle  string
	Author    string
	BannerURL string
	Content   []ContentSection
}

// ContentSection is one heading plus its body. Heading is nil when the editor
// left it empty.
type ContentSection struct {
	Heading *string
	Body    []RichTextBlock
}

// RichTextBlock is a single rich-text block. Text and Spans are passed through
// untouched; rendering them is someone else's job.
type RichTextBlock struct {
	Type  string
	Text  string
	Spans []RichTextSpan
	URL   string // image blocks
	Alt   string // image blocks
}

// RichTextSpan marks up Text[Start:End] (UTF-16 offsets).
type RichTextSpan struct {
	Start  int
	End    int
	Type   string
	URL    string // hyperlink spans
	Target string
	Label  string // label spans
}

// PostSummary is the slice of a Post shown in listings and navigation.
type PostSummary struct {
	UID                  string
	FirstPublicationDate *time.Time
	Title                string
	Subtitle             string
	Author               string
}

// Summary reduces a post to its listing fields.
func (p Post) Summary() PostSummary {
	return PostSummary{
		UID:                  p.UID,
		FirstPublicationDate: p.FirstPublicationDate,
		Title:                p.Data.Title,
		Subtitle:             p.Data.Subtitle,
		Author:               p.Data.Author,
	}
}

// NavigationContext points at the posts around the one being shown.
// Either side may be nil.
type NavigationContext struct {
	Previous *PostSummary
	Next     *PostSummary
}

// PostView is a post together with its navigation.
type PostView struct {
	Post       Post
	Navigation NavigationContext
}

// PostPage is everything a generated post page is built from.
type PostPage struct {
	PostView
	ReadingMinutes int
	Preview        bool
}

// NewPostPage derives the page props for view.
func NewPostPage(view PostView, preview bool) PostPage {
	return PostPage{
		PostView:       view,
		ReadingMinutes: EstimateReadingMinutes(view.Post.Data.Content),
		Preview:        preview,
	}
}

// Package api holds the JSON shapes served by the HTTP API and written by
// the snapshot exporter.
package api

import "time"

// PostSummary is a listing entry.
type PostSummary struct {
	UID                  string      `json:"uid"`
	FirstPublicationDate *time.Time  `json:"first_publication_date"`
	DisplayDate          string      `json:"display_date,omitempty"`
	Data                 SummaryData `json:"data"`
}

type SummaryData struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
}

// PostsPage is the listing state kept by the client between load-more
// requests.
type PostsPage struct {
	NextPage       *string       `json:"next_page"`
	Results        []PostSummary `json:"results"`
	CanLoadMore    bool          `json:"can_load_more"`
	LoadMoreFailed bool          `json:"load_more_failed,omitempty"`
}

// LoadMoreRequest is the listing state the client currently shows.
type LoadMoreRequest struct {
	NextPage *string       `json:"next_page"`
	Results  []PostSummary `json:"results"`
}

type Banner struct {
	URL string `json:"url"`
}

type RichTextSpan struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Type   string `json:"type"`
	URL    string `json:"url,omitempty"`
	Target string `json:"target,omitempty"`
	Label  string `json:"label,omitempty"`
}

type RichTextBlock struct {
	Type  string         `json:"type"`
	Text  string         `json:"text"`
	Spans []RichTextSpan `json:"spans"`
	URL   string         `json:"url,omitempty"`
	Alt   string         `json:"alt,omitempty"`
}

// ContentSection carries both the structured body and its rendered HTML.
type ContentSection struct {
	Heading *string         `json:"heading"`
	Body    []RichTextBlock `json:"body"`
	HTML    string          `json:"html"`
	Text    string          `json:"text"` // plain text of Body
}

type PostData struct {
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Author   string           `json:"author"`
	Banner   Banner           `json:"banner"`
	Content  []ContentSection `json:"content"`
}

type Post struct {
	UID                  string     `json:"uid"`
	FirstPublicationDate *time.Time `json:"first_publication_date"`
	LastPublicationDate  *time.Time `json:"last_publication_date,omitempty"`
	DisplayDate          string     `json:"display_date,omitempty"`
	Data                 PostData   `json:"data"`
}

// Navigation carries the neighbouring posts in the listing's summary shape.
type Navigation struct {
	Previous *PostSummary `json:"previous"`
	Next     *PostSummary `json:"next"`
}

// PostPage is everything the post page renders.
type PostPage struct {
	Post           Post       `json:"post"`
	Navigation     Navigation `json:"navigation"`
	ReadingMinutes int        `json:"reading_minutes"`
	Preview        bool       `json:"preview"`
	GeneratedAt    *time.Time `json:"generated_at,omitempty"`
}

// PathsResponse lists the slugs generated ahead of time. Other slugs are
// generated on first request.
type PathsResponse struct {
	Paths    []string `json:"paths"`
	Fallback string   `json:"fallback"`
}

type PrerenderFailure struct {
	Slug  string `json:"slug"`
	Error string `json:"error"`
}

type PrerenderResponse struct {
	Generated  []string           `json:"generated"`
	Failed     []PrerenderFailure `json:"failed"`
	DurationMS int64              `json:"duration_ms"`
}

type RevalidateResponse struct {
	Slug        string    `json:"slug"`
	GeneratedAt time.Time `json:"generated_at"`
	Removed     bool      `json:"removed"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error        string `json:"error"`
	Message      string `json:"message"`
	BusinessCode string `json:"business_code,omitempty"`
	Context      any    `json:"context,omitempty"`
}

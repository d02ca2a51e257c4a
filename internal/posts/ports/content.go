package ports

import (
	"context"
	"errors"
)

// ErrDocumentNotFound is returned by ContentBackend lookups that match nothing.
var ErrDocumentNotFound = errors.New("document not found")

// Field names usable in Query.Orderings.
const (
	OrderFirstPublicationDate = "document.first_publication_date"
	OrderLastPublicationDate  = "document.last_publication_date"
)

// Ordering sorts a query by a single field.
type Ordering struct {
	Field string
	Desc  bool
}

// Query is a filtered, paginated listing of one document type.
type Query struct {
	DocumentType string
	Fetch        []string // field projection, e.g. "po.title"; empty means everything
	PageSize     int
	After        string // only documents after this id in the chosen ordering
	Orderings    []Ordering
	Ref          string // content revision; empty means the published master
}

// ContentBackend is the headless CMS the blog reads from.
type ContentBackend interface {
	// Query runs a listing query.
	Query(ctx context.Context, q Query) (*RawPage, error)

	// FetchPage follows a next-page cursor taken from a previous RawPage.
	FetchPage(ctx context.Context, cursor string) (*RawPage, error)

	// GetByUID loads one document by type and uid, optionally pinned to ref.
	GetByUID(ctx context.Context, documentType, uid, ref string) (*RawDocument, error)

	// GetByID loads one document by id, optionally pinned to ref.
	GetByID(ctx context.Context, id, ref string) (*RawDocument, error)

	// Ping checks that the backend answers.
	Ping(ctx context.Context) error
}

// RawPage is one page of a listing query, as the CMS returns it.
type RawPage struct {
	Page             int           `json:"page"`
	ResultsPerPage   int           `json:"results_per_page"`
	ResultsSize      int           `json:"results_size"`
	TotalResultsSize int           `json:"total_results_size"`
	TotalPages       int           `json:"total_pages"`
	NextPage         *string       `json:"next_page"`
	PrevPage         *string       `json:"prev_page"`
	Results          []RawDocument `json:"results"`
}

// NextCursor is NextPage, or "" when there is none.
func (p *RawPage) NextCursor() string {
	if p == nil || p.NextPage == nil {
		return ""
	}
	return *p.NextPage
}

// RawDocument is a post document with the CMS metadata still attached.
type RawDocument struct {
	ID                   string      `json:"id"`
	UID                  string      `json:"uid"`
	Type                 string      `json:"type"`
	Href                 string      `json:"href"`
	Tags                 []string    `json:"tags"`
	FirstPublicationDate *string     `json:"first_publication_date"`
	LastPublicationDate  *string     `json:"last_publication_date"`
	Lang                 string      `json:"lang"`
	Data                 RawPostData `json:"data"`
}

// RawPostData is the custom-type payload of a post.
type RawPostData struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Author   string       `json:"author"`
	Banner   *RawImage    `json:"banner"`
	Content  []RawSection `json:"content"`
}

// RawImage is an image field.
type RawImage struct {
	URL string  `json:"url"`
	Alt *string `json:"alt"`
}

// RawSection is one entry of the content group field.
type RawSection struct {
	Heading *string            `json:"heading"`
	Body    []RawRichTextBlock `json:"body"`
}

// RawRichTextBlock is a structured-text block.
type RawRichTextBlock struct {
	Type  string    `json:"type"`
	Text  string    `json:"text"`
	Spans []RawSpan `json:"spans"`
	URL   string    `json:"url,omitempty"`
	Alt   *string   `json:"alt,omitempty"`
}

// RawSpan is inline markup inside a block.
type RawSpan struct {
	Start int          `json:"start"`
	End   int          `json:"end"`
	Type  string       `json:"type"`
	Data  *RawSpanData `json:"data,omitempty"`
}

// RawSpanData carries hyperlink targets and label names.
type RawSpanData struct {
	LinkType string `json:"link_type,omitempty"`
	URL      string `json:"url,omitempty"`
	Target   string `json:"target,omitempty"`
	Label    string `json:"label,omitempty"`
}

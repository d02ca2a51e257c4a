package prismic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

const maxResponseBytes = 8 << 20

// ErrForeignCursor is returned by FetchPage for cursors that do not point at
// the configured API.
var ErrForeignCursor = errors.New("cursor does not point at the content API")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("content API returned %d: %s", e.StatusCode, e.Body)
}

// Config locates a repository's v2 API.
type Config struct {
	Endpoint    string // e.g. https://spacetraveling.cdn.prismic.io/api/v2
	AccessToken string
	Timeout     time.Duration
	RefTTL      time.Duration // how long the master ref is cached
}

// Client implements ports.ContentBackend over the Prismic v2 REST API.
type Client struct {
	endpoint    *url.URL
	accessToken string
	httpClient  *http.Client
	refTTL      time.Duration
	logger      logger.Logger

	mu           sync.RWMutex
	masterRef    string
	refFetchedAt time.Time
}

// NewClient validates the endpoint and builds a client.
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	endpoint, err := url.Parse(strings.TrimRight(cfg.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("prismic.NewClient: invalid endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" || endpoint.Host == "" {
		return nil, fmt.Errorf("prismic.NewClient: endpoint must be an absolute http(s) URL, got %q", cfg.Endpoint)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoint:    endpoint,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
		refTTL:      cfg.RefTTL,
		logger:      log,
	}, nil
}

// Query runs a listing query against the master ref unless q.Ref is set.
func (c *Client) Query(ctx context.Context, q ports.Query) (*ports.RawPage, error) {
	params, err := c.baseParams(ctx, q.Ref)
	if err != nil {
		return nil, err
	}

	params.Set("q", Predicates(At("document.type", q.DocumentType)))
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if len(q.Fetch) > 0 {
		params.Set("fetch", strings.Join(q.Fetch, ","))
	}
	if q.After != "" {
		params.Set("after", q.After)
	}
	if len(q.Orderings) > 0 {
		params.Set("orderings", FormatOrderings(q.Orderings))
	}

	page, err := c.search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("Client.Query: %w", err)
	}
	return page, nil
}

// FetchPage follows a next_page URL from an earlier response. Only URLs on
// the configured scheme and host are followed.
func (c *Client) FetchPage(ctx context.Context, cursor string) (*ports.RawPage, error) {
	target, err := url.Parse(cursor)
	if err != nil {
		return nil, fmt.Errorf("Client.FetchPage: %w", err)
	}
	if target.Scheme != c.endpoint.Scheme || target.Host != c.endpoint.Host {
		return nil, ErrForeignCursor
	}

	params := target.Query()
	if c.accessToken != "" && params.Get("access_token") == "" {
		params.Set("access_token", c.accessToken)
		target.RawQuery = params.Encode()
	}

	var page ports.RawPage
	if err := c.getJSON(ctx, target, &page); err != nil {
		return nil, fmt.Errorf("Client.FetchPage: %w", err)
	}
	return &page, nil
}

// GetByUID loads the document of documentType with the given uid.
func (c *Client) GetByUID(ctx context.Context, documentType, uid, ref string) (*ports.RawDocument, error) {
	doc, err := c.single(ctx, ref, Predicates(At("my."+documentType+".uid", uid)))
	if err != nil {
		return nil, fmt.Errorf("Client.GetByUID: %w", err)
	}
	return doc, nil
}

// GetByID loads a document by id.
func (c *Client) GetByID(ctx context.Context, id, ref string) (*ports.RawDocument, error) {
	doc, err := c.single(ctx, ref, Predicates(At("document.id", id)))
	if err != nil {
		return nil, fmt.Errorf("Client.GetByID: %w", err)
	}
	return doc, nil
}

// Ping fetches the API document, bypassing the ref cache.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.fetchMasterRef(ctx); err != nil {
		return fmt.Errorf("Client.Ping: %w", err)
	}
	return nil
}

// MasterRef returns the published content ref, cached for RefTTL.
func (c *Client) MasterRef(ctx context.Context) (string, error) {
	c.mu.RLock()
	ref, fetchedAt := c.masterRef, c.refFetchedAt
	c.mu.RUnlock()

	if ref != "" && c.refTTL > 0 && time.Since(fetchedAt) < c.refTTL {
		return ref, nil
	}

	ref, err := c.fetchMasterRef(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.masterRef = ref
	c.refFetchedAt = time.Now()
	c.mu.Unlock()

	return ref, nil
}

type apiDocument struct {
	Refs []struct {
		ID          string `json:"id"`
		Ref         string `json:"ref"`
		Label       string `json:"label"`
		IsMasterRef bool   `json:"isMasterRef"`
	} `json:"refs"`
}

func (c *Client) fetchMasterRef(ctx context.Context) (string, error) {
	target := *c.endpoint
	if c.accessToken != "" {
		target.RawQuery = url.Values{"access_token": {c.accessToken}}.Encode()
	}

	var api apiDocument
	if err := c.getJSON(ctx, &target, &api); err != nil {
		return "", fmt.Errorf("fetch API document: %w", err)
	}
	for _, r := range api.Refs {
		if r.IsMasterRef {
			return r.Ref, nil
		}
	}
	return "", errors.New("API document has no master ref")
}

func (c *Client) single(ctx context.Context, ref, predicates string) (*ports.RawDocument, error) {
	params, err := c.baseParams(ctx, ref)
	if err != nil {
		return nil, err
	}
	params.Set("q", predicates)
	params.Set("pageSize", "1")

	page, err := c.search(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, ports.ErrDocumentNotFound
	}
	return &page.Results[0], nil
}

func (c *Client) baseParams(ctx context.Context, ref string) (url.Values, error) {
	if ref == "" {
		master, err := c.MasterRef(ctx)
		if err != nil {
			return nil, err
		}
		ref = master
	}

	params := url.Values{}
	params.Set("ref", ref)
	if c.accessToken != "" {
		params.Set("access_token", c.accessToken)
	}
	return params, nil
}

func (c *Client) search(ctx context.Context, params url.Values) (*ports.RawPage, error) {
	target := c.endpoint.JoinPath("documents", "search")
	target.RawQuery = params.Encode()

	var page ports.RawPage
	if err := c.getJSON(ctx, target, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) getJSON(ctx context.Context, target *url.URL, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "content API request",
		"path", target.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	body := io.LimitReader(resp.Body, maxResponseBytes)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ ports.ContentBackend = (*Client)(nil)

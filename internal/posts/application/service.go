package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/philly/spacetraveling/internal/platform/apperror"
	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

// Error definitions for service operations
var (
	ErrPostNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodePostNotFound,
		"post not found",
		http.StatusNotFound,
	)

	ErrInvalidSlug = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidSlug,
		"invalid post slug",
		http.StatusBadRequest,
	)

	ErrContentUnavailable = apperror.New(
		apperror.CodeUpstreamUnavailable,
		apperror.BusinessCodeContentUnavailable,
		"content backend unavailable",
		http.StatusBadGateway,
	)

	ErrPreviewUnavailable = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodePreviewUnavailable,
		"preview document not found",
		http.StatusNotFound,
	)

	ErrSnapshotFailed = apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeSnapshotFailed,
		"failed to store generated pages",
		http.StatusInternalServerError,
	)
)

// Settings are the content-model knobs of the posts service.
type Settings struct {
	DocumentType    string
	ListingPageSize int
	PathsPageSize   int
}

// DefaultSettings matches the blog's CMS repository.
func DefaultSettings() Settings {
	return Settings{
		DocumentType:    "po",
		ListingPageSize: 1,
		PathsPageSize:   100,
	}
}

// PostsService reads posts from the content backend and shapes them for
// the listing and post pages.
type PostsService struct {
	backend  ports.ContentBackend
	finder   ports.AdjacentFinder
	logger   logger.Logger
	settings Settings
}

// NewPostsService creates a new posts service
func NewPostsService(
	backend ports.ContentBackend,
	finder ports.AdjacentFinder,
	logger logger.Logger,
	settings Settings,
) *PostsService {
	return &PostsService{
		backend:  backend,
		finder:   finder,
		logger:   logger,
		settings: settings,
	}
}

// GetPost builds the post page for slug. A non-empty ref pins the document
// to that content revision and marks the page as a preview.
//
// Backend failures are returned to the caller as ErrContentUnavailable; they
// are not retried here.
func (s *PostsService) GetPost(ctx context.Context, slug, ref string) (*domain.PostPage, error) {
	doc, err := s.backend.GetByUID(ctx, s.settings.DocumentType, slug, ref)
	if err != nil {
		if errors.Is(err, ports.ErrDocumentNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, s.unavailable(ctx, "failed to load post", err, "slug", slug, "preview", ref != "")
	}

	adjacent, err := s.finder.FindAdjacent(ctx, doc.ID)
	if err != nil {
		return nil, s.unavailable(ctx, "failed to load adjacent posts", err, "slug", slug, "document_id", doc.ID)
	}

	page := domain.NewPostPage(ToViewModel(doc, adjacent.Previous, adjacent.Next), ref != "")
	return &page, nil
}

// ListPaths returns the slugs to generate ahead of time. Only the first page
// of PathsPageSize documents is used; any other slug is generated the first
// time it is requested.
func (s *PostsService) ListPaths(ctx context.Context) ([]string, error) {
	page, err := s.backend.Query(ctx, ports.Query{
		DocumentType: s.settings.DocumentType,
		Fetch:        []string{s.field("uid")},
		PageSize:     s.settings.PathsPageSize,
	})
	if err != nil {
		return nil, s.unavailable(ctx, "failed to list static paths", err)
	}

	slugs := make([]string, 0, len(page.Results))
	for _, doc := range page.Results {
		if doc.UID == "" {
			continue
		}
		slugs = append(slugs, doc.UID)
	}
	return slugs, nil
}

// ResolvePreview loads the document a preview link points at, pinned to the
// preview token, and returns its slug.
func (s *PostsService) ResolvePreview(ctx context.Context, token, documentID string) (string, error) {
	doc, err := s.backend.GetByID(ctx, documentID, token)
	if err != nil {
		if errors.Is(err, ports.ErrDocumentNotFound) {
			return "", ErrPreviewUnavailable
		}
		return "", s.unavailable(ctx, "failed to resolve preview", err, "document_id", documentID)
	}

	if doc.Type != s.settings.DocumentType || doc.UID == "" {
		s.logger.Warn(ctx, "preview document is not a post",
			"document_id", documentID,
			"type", doc.Type,
		)
		return "", ErrPreviewUnavailable
	}

	return doc.UID, nil
}

// Ping reports whether the content backend is reachable.
func (s *PostsService) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func (s *PostsService) field(name string) string {
	return s.settings.DocumentType + "." + name
}

func (s *PostsService) unavailable(ctx context.Context, msg string, err error, args ...any) error {
	s.logger.Error(ctx, msg, append([]any{"error", err}, args...)...)
	return apperror.Wrap(
		err,
		ErrContentUnavailable.Code,
		ErrContentUnavailable.BusinessCode,
		ErrContentUnavailable.Message,
		ErrContentUnavailable.HTTPStatus,
	)
}

package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/philly/spacetraveling/internal/adapters/rest/middleware"
	"github.com/philly/spacetraveling/internal/api"
	"github.com/philly/spacetraveling/internal/platform/apperror"
	"github.com/philly/spacetraveling/internal/posts/application"
)

const maxFeedStateBytes = 1 << 20

var errInvalidFeedState = apperror.New(
	apperror.CodeValidationFailed,
	apperror.BusinessCodeInvalidFeedState,
	"invalid listing state",
	http.StatusBadRequest,
)

// PostsHandler serves the listing and post pages.
type PostsHandler struct {
	*BaseHandler
	service   *application.PostsService
	pages     *application.StaticPages
	presenter *api.Presenter
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(
	base *BaseHandler,
	service *application.PostsService,
	pages *application.StaticPages,
	presenter *api.Presenter,
) *PostsHandler {
	return &PostsHandler{
		BaseHandler: base,
		service:     service,
		pages:       pages,
		presenter:   presenter,
	}
}

// ListPosts returns the first listing page.
func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListPosts(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, h.presenter.PostsPage(page, false), http.StatusOK)
}

// LoadMore appends the next page to the listing state in the body. A failed
// fetch is not an error response: the state comes back unchanged with
// load_more_failed set.
func (h *PostsHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	var req api.LoadMoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFeedStateBytes)).Decode(&req); err != nil {
		h.HandleError(w, r, errInvalidFeedState)
		return
	}

	update := h.service.LoadMore(r.Context(), api.ToDomainPage(req))
	h.WriteJSONResponse(w, r, h.presenter.PostsPage(update.Page, update.Failed), http.StatusOK)
}

// ListPaths returns the slugs to generate ahead of time.
func (h *PostsHandler) ListPaths(w http.ResponseWriter, r *http.Request) {
	slugs, err := h.service.ListPaths(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, api.PathsResponse{Paths: slugs, Fallback: "blocking"}, http.StatusOK)
}

// GetPost serves a post page. Previews are rendered live at the preview ref
// and never cached; everything else comes from the generated pages.
func (h *PostsHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug, ok := h.ParseSlug(w, r, chi.URLParam(r, "slug"))
	if !ok {
		return
	}

	if ref, previewing := middleware.PreviewRef(r.Context()); previewing {
		page, err := h.service.GetPost(r.Context(), slug, ref)
		if err != nil {
			h.HandleError(w, r, err)
			return
		}
		w.Header().Set("Cache-Control", "private, no-store")
		h.WriteJSONResponse(w, r, h.presenter.PostPage(*page, nil), http.StatusOK)
		return
	}

	snap, err := h.pages.Page(r.Context(), slug)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate",
		int(h.pages.RevalidateInterval().Seconds())))
	h.WriteJSONResponse(w, r, h.presenter.Snapshot(*snap), http.StatusOK)
}

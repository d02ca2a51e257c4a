package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/philly/spacetraveling/internal/adapters/rest/middleware"
	"github.com/philly/spacetraveling/internal/api"
	"github.com/philly/spacetraveling/internal/posts/application"
)

// AdminHandler triggers page generation on demand, e.g. from a CMS publish
// webhook. Its routes sit behind the JWT middleware.
type AdminHandler struct {
	*BaseHandler
	pages *application.StaticPages
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(base *BaseHandler, pages *application.StaticPages) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		pages:       pages,
	}
}

// Revalidate rebuilds one page now. A post that no longer exists has its
// page removed, which is reported rather than treated as an error.
func (h *AdminHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	slug, ok := h.ParseSlug(w, r, chi.URLParam(r, "slug"))
	if !ok {
		return
	}

	subject, _ := middleware.GetJWTSubject(r.Context())
	h.logger.Info(r.Context(), "revalidation requested", "slug", slug, "subject", subject)

	snap, err := h.pages.Regenerate(r.Context(), slug)
	if err != nil {
		if errors.Is(err, application.ErrPostNotFound) {
			h.WriteJSONResponse(w, r, api.RevalidateResponse{Slug: slug, Removed: true}, http.StatusOK)
			return
		}
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, api.RevalidateResponse{Slug: slug, GeneratedAt: snap.GeneratedAt}, http.StatusOK)
}

// Prerender rebuilds every static path.
func (h *AdminHandler) Prerender(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.GetJWTSubject(r.Context())
	h.logger.Info(r.Context(), "prerender requested", "subject", subject)

	report, err := h.pages.Prerender(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	failed := make([]api.PrerenderFailure, 0, len(report.Failed))
	for _, f := range report.Failed {
		failed = append(failed, api.PrerenderFailure{Slug: f.Slug, Error: f.Reason})
	}

	h.WriteJSONResponse(w, r, api.PrerenderResponse{
		Generated:  report.Generated,
		Failed:     failed,
		DurationMS: report.Duration.Milliseconds(),
	}, http.StatusOK)
}

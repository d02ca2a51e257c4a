package rest

import (
	"net/http"
	"net/url"

	"github.com/philly/spacetraveling/internal/adapters/rest/middleware"
	"github.com/philly/spacetraveling/internal/platform/validator"
	"github.com/philly/spacetraveling/internal/posts/application"
)

const maxPreviewTokenLength = 2048

// PreviewHandler enters and leaves preview mode.
type PreviewHandler struct {
	*BaseHandler
	service  *application.PostsService
	sessions *middleware.PreviewSessions
}

// NewPreviewHandler creates a new preview handler
func NewPreviewHandler(base *BaseHandler, service *application.PostsService, sessions *middleware.PreviewSessions) *PreviewHandler {
	return &PreviewHandler{
		BaseHandler: base,
		service:     service,
		sessions:    sessions,
	}
}

// Preview is the CMS preview link target. It resolves the previewed document,
// remembers the preview ref in the session and redirects to the post.
func (h *PreviewHandler) Preview(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	documentID := r.URL.Query().Get("documentId")

	if token == "" || len(token) > maxPreviewTokenLength {
		h.WriteJSONError(w, r, "invalid_request", "Invalid token", http.StatusBadRequest)
		return
	}
	if err := validator.ValidateDocumentID(documentID); err != nil {
		h.WriteJSONError(w, r, "invalid_request", "Invalid documentId", http.StatusBadRequest)
		return
	}

	slug, err := h.service.ResolvePreview(r.Context(), token, documentID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	if err := h.sessions.Start(w, r, token); err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "preview started", "slug", slug, "document_id", documentID)
	http.Redirect(w, r, "/post/"+url.PathEscape(slug), http.StatusTemporaryRedirect)
}

// ExitPreview clears the preview session and returns to the home page.
func (h *PreviewHandler) ExitPreview(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.HandleError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

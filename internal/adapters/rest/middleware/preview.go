package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/philly/spacetraveling/internal/platform/logger"
)

type previewContextKey struct{}

const previewRefKey = "ref"

// PreviewConfig configures the preview session cookie.
type PreviewConfig struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// PreviewSessions keeps the CMS preview ref in a signed cookie. While the
// cookie is present, post pages are rendered live at that ref.
type PreviewSessions struct {
	store  *sessions.CookieStore
	name   string
	logger logger.Logger
}

// NewPreviewSessions creates the cookie store.
func NewPreviewSessions(cfg PreviewConfig, logger logger.Logger) (*PreviewSessions, error) {
	if len(cfg.Secret) < 32 {
		return nil, fmt.Errorf("preview session secret must be at least 32 bytes")
	}

	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = time.Hour
	}

	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(maxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.Secure,
	}

	return &PreviewSessions{store: store, name: cfg.CookieName, logger: logger}, nil
}

// Start stores ref in the preview cookie.
func (p *PreviewSessions) Start(w http.ResponseWriter, r *http.Request, ref string) error {
	session, _ := p.store.Get(r, p.name) // a bad cookie yields a fresh session
	session.Values[previewRefKey] = ref
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("PreviewSessions.Start: %w", err)
	}
	return nil
}

// Clear expires the preview cookie.
func (p *PreviewSessions) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := p.store.Get(r, p.name)
	session.Options.MaxAge = -1
	delete(session.Values, previewRefKey)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("PreviewSessions.Clear: %w", err)
	}
	return nil
}

// Middleware places the preview ref, if any, in the request context.
func (p *PreviewSessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(p.name); err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session, err := p.store.Get(r, p.name)
		if err != nil {
			p.logger.Debug(r.Context(), "ignoring invalid preview cookie", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ref, ok := session.Values[previewRefKey].(string)
		if !ok || ref == "" {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPreviewRef(r.Context(), ref)))
	})
}

// WithPreviewRef returns a context carrying ref.
func WithPreviewRef(ctx context.Context, ref string) context.Context {
	return context.WithValue(ctx, previewContextKey{}, ref)
}

// PreviewRef returns the preview ref of the request, if previewing.
func PreviewRef(ctx context.Context) (string, bool) {
	ref, ok := ctx.Value(previewContextKey{}).(string)
	return ref, ok && ref != ""
}

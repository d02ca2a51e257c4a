package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newPreviewSessions(t *testing.T) *PreviewSessions {
	t.Helper()
	p, err := NewPreviewSessions(PreviewConfig{Secret: testSecret, CookieName: "st_preview"}, logger.Nop{})
	require.NoError(t, err)
	return p
}

// refRecorder is a handler that remembers the preview ref it saw.
func refRecorder(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, _ = PreviewRef(r.Context())
	})
}

func TestNewPreviewSessions_RequiresSecret(t *testing.T) {
	_, err := NewPreviewSessions(PreviewConfig{Secret: "short", CookieName: "st_preview"}, logger.Nop{})
	assert.Error(t, err)
}

func TestPreviewSessions_RoundTrip(t *testing.T) {
	p := newPreviewSessions(t)

	start := httptest.NewRecorder()
	require.NoError(t, p.Start(start, httptest.NewRequest(http.MethodGet, "/api/v1/preview", nil), "preview-ref-123"))

	cookies := start.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "st_preview", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/hello", nil)
	req.AddCookie(cookies[0])

	var got string
	p.Middleware(refRecorder(&got)).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "preview-ref-123", got)
}

func TestPreviewSessions_Clear(t *testing.T) {
	p := newPreviewSessions(t)

	rec := httptest.NewRecorder()
	require.NoError(t, p.Clear(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exit-preview", nil)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "st_preview", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestPreviewSessions_IgnoresMissingAndTamperedCookies(t *testing.T) {
	p := newPreviewSessions(t)

	var got string
	p.Middleware(refRecorder(&got)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, got)

	start := httptest.NewRecorder()
	require.NoError(t, p.Start(start, httptest.NewRequest(http.MethodGet, "/", nil), "preview-ref-123"))
	cookie := start.Result().Cookies()[0]
	cookie.Value = strings.ToUpper(cookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	p.Middleware(refRecorder(&got)).ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, got)

	other, err := NewPreviewSessions(PreviewConfig{Secret: strings.Repeat("x", 32), CookieName: "st_preview"}, logger.Nop{})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(start.Result().Cookies()[0])
	other.Middleware(refRecorder(&got)).ServeHTTP(httptest.NewRecorder(), req)
	assert.Empty(t, got)
}

package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://auth.spacetraveling.test/"

type signer struct {
	private jwk.Key
	public  jwk.Key
}

func newSigner(t *testing.T, kid string) signer {
	t.Helper()

	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	private, err := jwk.Import(raw)
	require.NoError(t, err)
	require.NoError(t, private.Set(jwk.KeyIDKey, kid))
	require.NoError(t, private.Set(jwk.AlgorithmKey, jwa.RS256()))

	public, err := jwk.PublicKeyOf(private)
	require.NoError(t, err)

	return signer{private: private, public: public}
}

func (s signer) token(t *testing.T, issuer, subject string, expires time.Time) string {
	t.Helper()

	builder := jwt.NewBuilder().
		Issuer(issuer).
		IssuedAt(time.Now().Add(-time.Minute)).
		Expiration(expires)
	if subject != "" {
		builder = builder.Subject(subject)
	}
	tok, err := builder.Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.RS256(), s.private))
	require.NoError(t, err)
	return string(signed)
}

func TestJWTMiddleware(t *testing.T) {
	trusted := newSigner(t, "trusted")
	untrusted := newSigner(t, "untrusted")

	keySet := jwk.NewSet()
	require.NoError(t, keySet.AddKey(trusted.public))

	m := NewStaticJWTMiddleware(keySet, testIssuer, logger.Nop{})

	var gotSubject string
	protected := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = GetJWTSubject(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	inAnHour := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid token",
			header:     "Bearer " + trusted.token(t, testIssuer, "editor-1", inAnHour),
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrorCodeUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrorCodeUnauthorized,
		},
		{
			name:       "wrong issuer",
			header:     "Bearer " + trusted.token(t, "https://elsewhere.test/", "editor-1", inAnHour),
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrorCodeInvalidToken,
		},
		{
			name:       "unknown signing key",
			header:     "Bearer " + untrusted.token(t, testIssuer, "editor-1", inAnHour),
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrorCodeInvalidToken,
		},
		{
			name:       "expired",
			header:     "Bearer " + trusted.token(t, testIssuer, "editor-1", time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrorCodeTokenExpired,
		},
		{
			name:       "missing subject",
			header:     "Bearer " + trusted.token(t, testIssuer, "", inAnHour),
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrorCodeInvalidToken,
		},
		{
			name:       "garbage",
			header:     "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrorCodeInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSubject = ""
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/prerender", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode == "" {
				assert.Equal(t, "editor-1", gotSubject)
				return
			}

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
			assert.Empty(t, gotSubject)
		})
	}
}

func TestGetJWTSubject_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetJWTSubject(req.Context())
	assert.False(t, ok)
}

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/philly/spacetraveling/internal/platform/logger"
)

var (
	ErrMissingToken   = errors.New("missing authentication token")
	ErrInvalidToken   = errors.New("invalid authentication token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrMissingSubject = errors.New("missing subject in token")
)

type jwtContextKey string

const JWTSubjectContextKey jwtContextKey = "jwt_subject"

// JWTMiddleware guards the admin routes. Tokens must be signed by a key from
// the issuer's JWKS and carry a subject.
type JWTMiddleware struct {
	issuer string
	keys   func(ctx context.Context) (jwk.Set, error)
	logger logger.Logger
}

// NewJWTMiddleware fetches the JWKS once to validate the endpoint and keeps
// it in an auto-refreshing cache.
func NewJWTMiddleware(ctx context.Context, jwksEndpoint string, issuer string, logger logger.Logger) (*JWTMiddleware, error) {
	cache, err := jwk.NewCache(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	if err := cache.Register(ctx, jwksEndpoint); err != nil {
		return nil, fmt.Errorf("failed to register JWKS URL: %w", err)
	}

	if _, err := cache.Lookup(ctx, jwksEndpoint); err != nil {
		return nil, fmt.Errorf("failed to fetch initial JWKS: %w", err)
	}

	return &JWTMiddleware{
		issuer: issuer,
		keys: func(ctx context.Context) (jwk.Set, error) {
			return cache.Lookup(ctx, jwksEndpoint)
		},
		logger: logger,
	}, nil
}

// NewStaticJWTMiddleware verifies tokens against a fixed key set.
func NewStaticJWTMiddleware(keySet jwk.Set, issuer string, logger logger.Logger) *JWTMiddleware {
	return &JWTMiddleware{
		issuer: issuer,
		keys: func(context.Context) (jwk.Set, error) {
			return keySet, nil
		},
		logger: logger,
	}
}

func (m *JWTMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteJSONError(w, ErrorCodeUnauthorized, ErrMissingToken.Error(), http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			WriteJSONError(w, ErrorCodeUnauthorized, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		keySet, err := m.keys(r.Context())
		if err != nil {
			m.logger.Error(r.Context(), "failed to get JWKS", "error", err)
			WriteJSONError(w, ErrorCodeInternalServerError, "Failed to get JWKS", http.StatusInternalServerError)
			return
		}

		token, err := jwt.ParseString(
			tokenString,
			jwt.WithKeySet(keySet),
			jwt.WithValidate(true),
			jwt.WithIssuer(m.issuer),
		)
		if err != nil {
			if strings.Contains(err.Error(), "exp not satisfied") || strings.Contains(err.Error(), "expired") {
				WriteJSONError(w, ErrorCodeTokenExpired, ErrTokenExpired.Error(), http.StatusUnauthorized)
				return
			}
			m.logger.Debug(r.Context(), "rejected token", "error", err)
			WriteJSONError(w, ErrorCodeInvalidToken, ErrInvalidToken.Error(), http.StatusUnauthorized)
			return
		}

		var subject string
		if err := token.Get("sub", &subject); err != nil || subject == "" {
			WriteJSONError(w, ErrorCodeInvalidToken, ErrMissingSubject.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), JWTSubjectContextKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetJWTSubject returns the subject of the verified token, if any.
func GetJWTSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(JWTSubjectContextKey).(string)
	return subject, ok
}

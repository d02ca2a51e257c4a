package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/philly/spacetraveling/internal/adapters/rest"
	"github.com/philly/spacetraveling/internal/adapters/rest/middleware"
	"github.com/philly/spacetraveling/internal/platform/logger"
)

// NewHTTPServer creates and configures the HTTP server with all routes
func NewHTTPServer(
	config Config,
	server *rest.Server,
	jwtMiddleware *middleware.JWTMiddleware,
	previewSessions *middleware.PreviewSessions,
	log logger.Logger,
) *http.Server {
	return &http.Server{
		Addr:         config.ServerAddress,
		Handler:      withObservability(NewRouter(server, jwtMiddleware, previewSessions, log), log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewRouter registers the API routes. The admin routes are mounted only when
// jwtMiddleware is non-nil.
func NewRouter(
	server *rest.Server,
	jwtMiddleware *middleware.JWTMiddleware,
	previewSessions *middleware.PreviewSessions,
	log logger.Logger,
) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", server.Health.GetLiveness)
		r.Get("/health/ready", server.Health.GetReadiness)

		r.Group(func(r chi.Router) {
			r.Use(previewSessions.Middleware)

			r.Get("/posts", server.Posts.ListPosts)
			r.Post("/posts/load-more", server.Posts.LoadMore)
			r.Get("/posts/paths", server.Posts.ListPaths)
			r.Get("/posts/{slug}", server.Posts.GetPost)
		})

		r.Get("/preview", server.Preview.Preview)
		r.Get("/exit-preview", server.Preview.ExitPreview)

		if jwtMiddleware == nil {
			log.Info(context.Background(), "JWT not configured, admin routes disabled")
			return
		}
		r.Route("/admin", func(r chi.Router) {
			r.Use(jwtMiddleware.Middleware)

			r.Post("/revalidate/{slug}", server.Admin.Revalidate)
			r.Post("/prerender", server.Admin.Prerender)
		})
	})

	return r
}

// withObservability adds request logging
func withObservability(handler http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Use chi's response writer wrapper to capture status code and bytes written
		wrr := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		handler.ServeHTTP(wrr, r)

		log.Info(r.Context(), "HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrr.Status(),
			"bytes", wrr.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}

package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/philly/spacetraveling/internal/api"
	"github.com/philly/spacetraveling/internal/posts/application"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	checkUp         = "up"
	checkDown       = "down"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	*BaseHandler
	content Pinger
	db      Pinger // nil when no database is configured
}

// NewHealthHandler creates the health handler. pool may be nil.
func NewHealthHandler(base *BaseHandler, service *application.PostsService, pool *pgxpool.Pool) *HealthHandler {
	h := &HealthHandler{
		BaseHandler: base,
		content:     service,
	}
	if pool != nil {
		h.db = pool
	}
	return h
}

// GetLiveness implements the liveness probe endpoint
// This is a lightweight check with no external dependencies
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONResponse(w, r, api.HealthResponse{Status: statusHealthy}, http.StatusOK)
}

// GetReadiness checks the content backend and, when configured, the database.
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	response := api.HealthResponse{Status: statusHealthy, Checks: map[string]string{}}
	httpStatus := http.StatusOK

	check := func(name string, p Pinger) {
		if err := p.Ping(ctx); err != nil {
			h.logger.Warn(r.Context(), "readiness check failed", "check", name, "error", err)
			response.Checks[name] = checkDown
			response.Status = statusUnhealthy
			httpStatus = http.StatusServiceUnavailable
			return
		}
		response.Checks[name] = checkUp
	}

	check("content", h.content)
	if h.db != nil {
		check("database", h.db)
	}

	h.WriteJSONResponse(w, r, response, httpStatus)
}

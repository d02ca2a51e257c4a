package rest

import (
	"encoding/json"
	"net/http"

	"github.com/philly/spacetraveling/internal/api"
	"github.com/philly/spacetraveling/internal/platform/apperror"
	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/philly/spacetraveling/internal/platform/validator"
	"github.com/philly/spacetraveling/internal/posts/application"
)

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger logger.Logger
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

// WriteJSONError writes a JSON error response
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, code string, message string, statusCode int) {
	h.writeError(w, r, statusCode, api.ErrorResponse{Error: code, Message: message})
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// HandleError maps err to an error response. AppErrors keep their status and
// codes; anything else is a 500 whose cause is logged, not returned.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		h.logger.Error(r.Context(), "unhandled error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		h.WriteJSONError(w, r, string(apperror.CodeInternalError), "internal server error", http.StatusInternalServerError)
		return
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			"error", err,
			"code", appErr.Code,
			"business_code", appErr.BusinessCode,
			"path", r.URL.Path,
		)
	}

	h.writeError(w, r, appErr.HTTPStatus, api.ErrorResponse{
		Error:        string(appErr.Code),
		Message:      appErr.Message,
		BusinessCode: string(appErr.BusinessCode),
		Context:      appErr.Details,
	})
}

// ParseSlug validates a slug path parameter, writing a 400 when it is
// malformed.
func (h *BaseHandler) ParseSlug(w http.ResponseWriter, r *http.Request, slug string) (string, bool) {
	if err := validator.ValidateSlugFormat(slug, validator.MaxSlugLength); err != nil {
		h.writeError(w, r, application.ErrInvalidSlug.HTTPStatus, api.ErrorResponse{
			Error:        string(application.ErrInvalidSlug.Code),
			Message:      application.ErrInvalidSlug.Message,
			BusinessCode: string(application.ErrInvalidSlug.BusinessCode),
			Context:      map[string]string{"reason": err.Error()},
		})
		return "", false
	}
	return slug, true
}

func (h *BaseHandler) writeError(w http.ResponseWriter, r *http.Request, statusCode int, body api.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error(r.Context(), "failed to encode error response",
			"error", err,
			"error_code", body.Error,
			"status_code", statusCode,
		)
	}
}

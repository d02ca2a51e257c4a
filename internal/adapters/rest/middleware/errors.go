package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/philly/spacetraveling/internal/api"
)

// Error codes used by middleware (lower_snake_case convention)
const (
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeInvalidToken        = "invalid_token"
	ErrorCodeTokenExpired        = "token_expired"
	ErrorCodeInternalServerError = "internal_server_error"
)

// WriteJSONError writes a JSON error response in the same shape the
// handlers use.
func WriteJSONError(w http.ResponseWriter, code string, message string, status int) {
	writeError(w, status, api.ErrorResponse{Error: code, Message: message})
}

// WriteJSONErrorWithDetails is WriteJSONError with a context object.
func WriteJSONErrorWithDetails(w http.ResponseWriter, code string, message string, status int, details map[string]any) {
	body := api.ErrorResponse{Error: code, Message: message}
	if len(details) > 0 {
		body.Context = details
	}
	writeError(w, status, body)
}

func writeError(w http.ResponseWriter, status int, body api.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Ignore encoding errors here as we're already in error handling
	_ = json.NewEncoder(w).Encode(body)
}

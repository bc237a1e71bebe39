// Package shared holds the JSON envelope helpers used by every handler.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "lifelink/pkg/domain-errors"
)

// ErrorResponse is the error envelope. Code is machine-readable; Message is
// for humans and carries no internal detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError renders a domain error as its mapped status and envelope.
// Non-domain errors collapse to a generic 500 so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	message := "internal error"
	if code != dErrors.CodeInternal {
		message = err.Error()
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), ErrorResponse{
		Error:   string(code),
		Message: message,
	})
}

// Package domainerrors provides coded domain errors. Services translate
// store sentinels and rule violations into these; the HTTP layer maps codes
// to status codes without inspecting error strings. Conventionally imported
// as dErrors.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error for callers and transports.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal"

	// Engine outcomes. These are recoverable and meant to be rendered,
	// not retried: the caller disables or relabels the action.
	CodeIneligible   Code = "donor_ineligible"
	CodeAtCapacity   Code = "request_at_capacity"
	CodeFulfilled    Code = "request_already_fulfilled"
	CodeDuplicate    Code = "duplicate_acceptance"
	CodeRoleMismatch Code = "role_mismatch"
)

// DomainError carries a machine-readable code alongside the message.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.cause }

// New builds a domain error with the given code and message.
func New(code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// chain for errors.Is / errors.As.
func Wrap(code Code, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err (anywhere in its chain) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// non-domain errors so transports always have something to render.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP status. Engine outcomes map to
// conflict/unprocessable so UIs can distinguish them from plain bad input.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeAtCapacity, CodeFulfilled, CodeDuplicate:
		return http.StatusConflict
	case CodeIneligible:
		return http.StatusUnprocessableEntity
	case CodeRoleMismatch:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

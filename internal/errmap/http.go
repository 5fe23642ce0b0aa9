// Package errmap translates domain errors into transport-level error
// representations. Mapping tables live here so handlers never hand-roll
// status codes.
package errmap

import (
	"errors"
	"net/http"

	"github.com/quartzless/softrtc/internal/domain"
)

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e HTTPError) Error() string {
	return e.Message
}

// httpMapping defines a domain error to HTTP status/code mapping.
type httpMapping struct {
	err        error
	statusCode int
	code       string
}

// httpMappings maps domain errors to HTTP status codes and error codes.
// Order matters: first match wins (via errors.Is).
var httpMappings = []httpMapping{
	// Validation errors — 400
	{domain.ErrInvalidDate, http.StatusBadRequest, "INVALID_DATE"},
	{domain.ErrInvalidTime, http.StatusBadRequest, "INVALID_TIME"},
	{domain.ErrInvalidUnit, http.StatusBadRequest, "INVALID_UNIT"},
	{domain.ErrInvalidFormat, http.StatusBadRequest, "INVALID_FORMAT"},

	// Auth errors — 401
	{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHENTICATED"},

	// Resource errors
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},

	// Internal invariant violations — the calendar state is broken
	{domain.ErrDayOfYearRange, http.StatusInternalServerError, "INTERNAL"},

	// Availability
	{domain.ErrUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
}

// ToHTTPError converts a domain error to an HTTP error.
func ToHTTPError(err error) HTTPError {
	if err == nil {
		return HTTPError{StatusCode: http.StatusOK}
	}
	for _, m := range httpMappings {
		if errors.Is(err, m.err) {
			return HTTPError{StatusCode: m.statusCode, Code: m.code, Message: err.Error()}
		}
	}
	return HTTPError{StatusCode: http.StatusInternalServerError, Code: "INTERNAL", Message: "internal error"}
}

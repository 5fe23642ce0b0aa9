package domain

import "errors"

// Sentinel errors for domain error conditions.
// Use errors.Is() for matching - never compare error strings.
var (
	// Validation errors
	ErrInvalidDate   = errors.New("invalid calendar date")
	ErrInvalidTime   = errors.New("invalid time of day")
	ErrInvalidUnit   = errors.New("unknown advance unit")
	ErrInvalidFormat = errors.New("unknown format selector")

	// Internal invariant violations
	ErrDayOfYearRange = errors.New("day of year outside calendar range")

	// Authorization errors
	ErrUnauthorized = errors.New("authentication required")

	// Resource errors
	ErrNotFound = errors.New("resource not found")

	// Operational errors
	ErrUnavailable = errors.New("service temporarily unavailable")

	// Configuration errors
	ErrConfigRequired = errors.New("required configuration key missing")
)

// clientErrors enumerates all domain errors that represent client-side issues.
var clientErrors = []error{
	ErrInvalidDate,
	ErrInvalidTime,
	ErrInvalidUnit,
	ErrInvalidFormat,
	ErrUnauthorized,
	ErrNotFound,
}

// IsClientError returns true if the error represents a client-side issue
// that will not succeed on retry without client-side changes.
func IsClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsInternal returns true if the error signals a broken internal invariant
// rather than bad input. These are logged loudly and are never expected in
// normal operation.
func IsInternal(err error) bool {
	return errors.Is(err, ErrDayOfYearRange)
}

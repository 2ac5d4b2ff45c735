package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks a request that produced no HTTP response at all.
	ErrNetwork = errors.New("network error")

	// ErrDecodeResponse marks a 2xx response whose body could not be decoded.
	ErrDecodeResponse = errors.New("failed to decode response body")
)

// Error is the normalized outcome of a failed HTTP call. Status is zero when
// no response was received.
type Error struct {
	Status  int
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return "network error: " + e.Message
	}

	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsStatus reports whether err is an *Error carrying the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}

	return false
}

// StatusMessage returns the backend-supplied message for err, or the empty
// string when err is not an *Error.
func StatusMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	return ""
}

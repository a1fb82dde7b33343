package apperrors

import (
	"errors"
	"fmt"
)

// Cause labels used in logs and metrics for a failed remote fetch.
const (
	CauseTransport = "transport"
	CauseStatus    = "status"
	CauseMalformed = "malformed"
	CauseUnknown   = "unknown"
)

// ErrTransport is returned when a request could not be completed: network
// failure, cancelled context, or an exceeded client-side rate limit.
type ErrTransport struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ErrTransport) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrTransport) Is(target error) bool {
	_, ok := target.(*ErrTransport)
	return ok
}

// ErrUnexpectedStatus is returned when the remote API answers with a non-2xx status.
type ErrUnexpectedStatus struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnexpectedStatus) Is(target error) bool {
	_, ok := target.(*ErrUnexpectedStatus)
	return ok
}

// ErrMalformedResponse is returned when a response body is not valid JSON or
// lacks a field the display model requires.
type ErrMalformedResponse struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ErrMalformedResponse) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("malformed response: %v", e.Err)
	}
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying parse or validation error.
func (e *ErrMalformedResponse) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrMalformedResponse) Is(target error) bool {
	_, ok := target.(*ErrMalformedResponse)
	return ok
}

// Cause returns the label of the failure kind carried by err.
func Cause(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, &ErrMalformedResponse{}):
		return CauseMalformed
	case errors.Is(err, &ErrUnexpectedStatus{}):
		return CauseStatus
	case errors.Is(err, &ErrTransport{}):
		return CauseTransport
	default:
		return CauseUnknown
	}
}

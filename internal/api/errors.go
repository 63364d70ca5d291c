package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnauthorized is returned when the server answers 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the server answers 403.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when the server answers 404.
	ErrNotFound = errors.New("not found")

	// ErrTransport is returned when no response was received at all.
	ErrTransport = errors.New("transport failure")
)

// APIError is the error returned for any non-2xx server response.
// It carries the server's own message so callers can surface it verbatim.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Code is a machine-readable error code from the payload, if any.
	Code string
	// Message is the human-readable message from the payload, if any.
	Message string
	// RequestID is the X-Request-ID the client attached to the request.
	RequestID string
}

// Error returns the error message.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api [%d]: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api [%d]", e.Status)
}

// Is reports whether this error matches the target sentinel.
// It supports errors.Is(err, ErrUnauthorized/ErrForbidden/ErrNotFound).
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// UserMessage returns the message to show a person: the server's own message
// when present, otherwise a generic fallback per error class.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch {
	case e.Status == http.StatusUnauthorized, e.Status == http.StatusForbidden:
		return "You are not allowed to perform this action."
	case e.Status >= 500:
		return "The server hit an internal error. Try again later."
	default:
		return "The request could not be completed."
	}
}

// TransportError is returned when the request never produced a response
// (DNS failure, connection refused, timeout).
type TransportError struct {
	// Cause is the underlying error from the HTTP transport.
	Cause error
}

// Error returns a human-readable description of the transport failure.
func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport failure: %v", e.Cause)
	}
	return "transport failure"
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrTransport).
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// UserMessage extracts a display message from any client error: server
// payloads verbatim, generic wording for everything else.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if errors.Is(err, ErrTransport) {
		return "Could not reach the server. Check your connection."
	}
	return "Something went wrong."
}

// errors.go defines the error taxonomy for remote calls. Transport failures, rejected
// requests, and malformed responses are all normalized into *APIError carrying one
// human-readable message, which is the only thing the slices ever store.
package remote

import (
	"errors"
	"fmt"
)

// ErrorKind classifies where a remote call failed
type ErrorKind string

const (
	// KindTransport means the request never produced an HTTP response
	KindTransport ErrorKind = "transport"
	// KindRejected means the service answered with a non-success status
	KindRejected ErrorKind = "rejected"
	// KindMalformed means a success response could not be decoded
	KindMalformed ErrorKind = "malformed"
)

var (
	// ErrNoActor is returned by calls that need an authenticated actor when none is attached
	ErrNoActor = errors.New("no authenticated actor")
	// ErrInvalidBaseURL is returned when the configured service URL cannot be used
	ErrInvalidBaseURL = errors.New("invalid remote base URL")
)

// APIError represents a failed call against the remote service
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// newAPIError builds an APIError; message falls back to fallback when empty
func newAPIError(kind ErrorKind, status int, message, fallback string, err error) *APIError {
	if message == "" {
		message = fallback
	}
	return &APIError{Kind: kind, StatusCode: status, Message: message, Err: err}
}

// MessageOf returns the single user-facing message for err: the remote-provided message
// when err is an *APIError, otherwise fallback.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// KindOf returns the failure kind of err, or KindTransport for errors that did not come
// from this package (context cancellation, for instance).
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransport
}

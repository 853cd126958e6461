package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Payload    map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// UpstreamStatus exposes the backend status code.
func (e *APIError) UpstreamStatus() int { return e.StatusCode }

// UpstreamDetails exposes the backend error payload.
func (e *APIError) UpstreamDetails() map[string]any { return e.Payload }

// NetworkError is a transport failure: nothing came back.
type NetworkError struct {
	Operation string
	URL       string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamStatus is zero for transport failures.
func (e *NetworkError) UpstreamStatus() int { return 0 }

// UpstreamDetails is empty for transport failures.
func (e *NetworkError) UpstreamDetails() map[string]any { return nil }

// DecodeError is a response whose body could not be decoded.
type DecodeError struct {
	Operation  string
	URL        string
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: undecodable %d response: %v", e.Operation, e.URL, e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MalformedResponse marks the error for the error mapper.
func (e *DecodeError) MalformedResponse() bool { return true }

// IsNotFound reports whether the backend answered 404, which means the
// endpoint (or resource) is absent.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// StatusCode returns the backend status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// upstreamError is satisfied by errors carrying a backend HTTP response.
type upstreamError interface {
	error
	UpstreamStatus() int
	UpstreamDetails() map[string]any
}

// malformedResponse is satisfied by errors for backend bodies that could not be decoded.
type malformedResponse interface {
	error
	MalformedResponse() bool
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewPreviewReadOnly rejects writes while fixtures are being served.
func NewPreviewReadOnly(operation string) error {
	return NewDomainError("PREVIEW_READ_ONLY", "preview mode does not accept changes", http.StatusConflict,
		map[string]any{"operation": operation})
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var malformed malformedResponse
	if errors.As(err, &malformed) && malformed.MalformedResponse() {
		return &DomainError{
			Code:       "UPSTREAM_INVALID_RESPONSE",
			Message:    "backend returned an unreadable response",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}
	var upstream upstreamError
	if errors.As(err, &upstream) {
		return fromUpstream(upstream)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &DomainError{
			Code:       "UPSTREAM_TIMEOUT",
			Message:    "backend did not answer in time",
			HTTPStatus: http.StatusGatewayTimeout,
			Err:        err,
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func fromUpstream(err upstreamError) *DomainError {
	status := err.UpstreamStatus()
	de := &DomainError{
		Code:       "UPSTREAM_ERROR",
		Message:    err.Error(),
		HTTPStatus: status,
		Details:    err.UpstreamDetails(),
	}
	switch {
	case status == 0:
		de.Code = "UPSTREAM_UNAVAILABLE"
		de.Message = "backend unavailable"
		de.HTTPStatus = http.StatusBadGateway
	case status == http.StatusNotFound:
		de.Code = "NOT_FOUND"
	case status == http.StatusUnauthorized:
		de.Code = "UNAUTHORIZED"
	case status == http.StatusForbidden:
		de.Code = "FORBIDDEN"
	case status >= 400 && status < 500:
		de.Code = "UPSTREAM_REJECTED"
	case status >= 500:
		de.HTTPStatus = http.StatusBadGateway
	}
	return de
}

func MapError(err error) error {
	return ToDomainError(err)
}

package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeUpstream struct {
	status  int
	details map[string]any
}

func (f fakeUpstream) Error() string                   { return "upstream said no" }
func (f fakeUpstream) UpstreamStatus() int             { return f.status }
func (f fakeUpstream) UpstreamDetails() map[string]any { return f.details }

type fakeMalformed struct{}

func (fakeMalformed) Error() string           { return "invalid character" }
func (fakeMalformed) MalformedResponse() bool { return true }

func TestToDomainError(t *testing.T) {
	t.Run("passes domain errors through", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewValidationError("bad", nil))
		de := ToDomainError(err)
		assert.Equal(t, "VALIDATION_FAILED", de.Code)
		assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	})

	t.Run("keeps upstream client errors and payload", func(t *testing.T) {
		de := ToDomainError(fakeUpstream{status: http.StatusUnprocessableEntity, details: map[string]any{"field": "curp"}})
		assert.Equal(t, "UPSTREAM_REJECTED", de.Code)
		assert.Equal(t, http.StatusUnprocessableEntity, de.HTTPStatus)
		assert.Equal(t, "curp", de.Details["field"])
		assert.Equal(t, "upstream said no", de.Message)
	})

	t.Run("maps upstream server errors to bad gateway", func(t *testing.T) {
		de := ToDomainError(fakeUpstream{status: http.StatusInternalServerError})
		assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)
	})

	t.Run("maps network failures", func(t *testing.T) {
		de := ToDomainError(fakeUpstream{status: 0})
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", de.Code)
	})

	t.Run("maps undecodable responses", func(t *testing.T) {
		de := ToDomainError(fmt.Errorf("calendar: %w", fakeMalformed{}))
		assert.Equal(t, "UPSTREAM_INVALID_RESPONSE", de.Code)
		assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)
	})

	t.Run("maps deadlines", func(t *testing.T) {
		de := ToDomainError(fmt.Errorf("call: %w", context.DeadlineExceeded))
		assert.Equal(t, http.StatusGatewayTimeout, de.HTTPStatus)
	})

	t.Run("hides unknown errors", func(t *testing.T) {
		de := ToDomainError(errors.New("boom"))
		assert.Equal(t, "INTERNAL_ERROR", de.Code)
		assert.Equal(t, "internal server error", de.Message)
	})
}

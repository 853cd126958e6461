// Package fetch holds the small combinators the accessors compose: a
// primary-then-fallback call and a settle-all fan-out.
package fetch

import (
	"context"
	"fmt"
)

// Call is one attempt at producing a value.
type Call[T any] func(ctx context.Context) (T, error)

// Attempt identifies which call produced a WithFallback result.
type Attempt int

const (
	Primary Attempt = iota
	Fallback
)

func (a Attempt) String() string {
	if a == Fallback {
		return "fallback"
	}
	return "primary"
}

// WithFallback runs primary and, only when shouldFallback accepts its error,
// runs fallback. Any other primary error is returned unchanged.
func WithFallback[T any](ctx context.Context, primary, fallback Call[T], shouldFallback func(error) bool) (T, Attempt, error) {
	value, err := primary(ctx)
	if err == nil {
		return value, Primary, nil
	}
	if shouldFallback == nil || !shouldFallback(err) {
		var zero T
		return zero, Primary, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		var zero T
		return zero, Primary, ctxErr
	}
	value, fbErr := fallback(ctx)
	if fbErr != nil {
		var zero T
		return zero, Fallback, fmt.Errorf("fallback after %v: %w", err, fbErr)
	}
	return value, Fallback, nil
}

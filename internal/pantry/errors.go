// internal/pantry/errors.go
//
// Error taxonomy shared by the cache, the stores, and the HTTP layer.
//
// The four kinds map one-to-one onto caller-visible outcomes: duplicate
// add, unknown id, storage failure, and bad input.  Callers distinguish
// them with errors.Is / errors.As; none are swallowed inside the cache.
package pantry

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate is returned when an add or rename collides with an
	// existing ingredient name (case-insensitive, trimmed).
	ErrDuplicate = errors.New("ingredient already in pantry")

	// ErrNotFound is returned when an id references no current ingredient.
	ErrNotFound = errors.New("ingredient not found")

	// ErrUnavailable wraps storage I/O failures.  The in-memory cache is
	// untouched whenever this surfaces from a mutation.
	ErrUnavailable = errors.New("storage unavailable")
)

// ValidationError reports a rejected input field.  It is a user error,
// not a system failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

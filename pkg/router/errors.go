package router

import (
	"errors"
	"fmt"
)

// Routing errors.
var (
	// ErrNotFound is returned when no route matches a navigation target.
	ErrNotFound = errors.New("route not found")

	// ErrDuplicateRouteName is returned at table construction when two
	// patterns share a name.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrInvalidPattern is returned at table construction for a malformed
	// path template.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrUnknownRoute is returned by reverse lookup for an unregistered name.
	ErrUnknownRoute = errors.New("unknown route")

	// ErrMissingParam is returned by reverse lookup when a placeholder has
	// no value.
	ErrMissingParam = errors.New("missing route parameter")

	// ErrNoHistory is returned by Back or Forward when there is no entry in
	// that direction.
	ErrNoHistory = errors.New("no history entry")
)

// NotFoundError reports the target that failed to match.
// It wraps ErrNotFound so callers can use errors.Is.
type NotFoundError struct {
	Path string
	// Cause is set when the path was rejected before matching.
	Cause error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %q: %v", ErrNotFound, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %q", ErrNotFound, e.Path)
}

// Unwrap returns ErrNotFound and the rejection cause, if any.
func (e *NotFoundError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrNotFound, e.Cause}
	}
	return []error{ErrNotFound}
}

// IsNotFound reports whether err is a no-match outcome.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBookingNotFound is returned by direct lookups for an unknown id.
	// Mutating operations on an unknown id are silent no-ops instead.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotPersisted wraps a storage write failure. The in-memory change
	// has already been applied and remains authoritative for the session;
	// callers surface a warning rather than rolling back.
	ErrNotPersisted = errors.New("change not persisted")
)

// ValidationError reports missing or invalid booking fields. No state
// change happens when one is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

func notPersisted(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrNotPersisted, err)
}

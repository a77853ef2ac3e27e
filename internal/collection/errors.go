package collection

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates an operation referenced an unknown entry id.
var ErrNotFound = errors.New("entry not found")

// ErrAmbiguousID indicates an id prefix matched more than one entry.
var ErrAmbiguousID = errors.New("ambiguous entry id")

// NotFoundError reports the id that could not be resolved.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry %q not found", e.ID)
}

// Is lets errors.Is match ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ErrorKind classifies the error for presentation.
func (e *NotFoundError) ErrorKind() string { return "not_found" }

// PersistenceError wraps a failed durable write. The in-memory mutation that
// triggered it has already been applied.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist entries: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for presentation.
func (e *PersistenceError) ErrorKind() string { return "persistence" }

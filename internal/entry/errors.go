package entry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTransition reports a lifecycle action the current status does not
// permit.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrorClassifier allows errors to declare their classification so callers can
// present them without matching on concrete types.
type ErrorClassifier interface {
	// ErrorKind returns a string classification of the error, for example
	// "validation", "not_found", "invalid_transition" or "persistence".
	ErrorKind() string
}

// KindOf returns the classification of err, or "internal" when err does not
// declare one.
func KindOf(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return "internal"
}

// ValidationError carries every rule a candidate violated.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// ErrorKind implements ErrorClassifier.
func (e *ValidationError) ErrorKind() string { return "validation" }

// TransitionError describes a rejected lifecycle action.
type TransitionError struct {
	Action string
	From   Status
}

func (e *TransitionError) Error() string {
	switch {
	case e.Action == ActionStart:
		return fmt.Sprintf("entry is not pending (status %s)", e.From)
	case e.Action == ActionFinish && e.From.IsCompleted():
		return "entry is already marked as finished"
	default:
		return fmt.Sprintf("cannot %s entry in status %s", e.Action, e.From)
	}
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// ErrorKind implements ErrorClassifier.
func (e *TransitionError) ErrorKind() string { return "invalid_transition" }

package service

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	// ErrValidation means a required field was empty, either caught
	// locally or reported by the service.
	ErrValidation = errors.New("validation failed")

	// ErrNetwork means no response was received.
	ErrNetwork = errors.New("network error")

	// ErrServer means the service answered with a failure.
	ErrServer = errors.New("server error")

	// ErrNotFound means the addressed task no longer exists.
	ErrNotFound = errors.New("not found")
)

// ErrMissingID is the cause when a stored record comes back without an id.
// It is reported with kind ErrServer.
var ErrMissingID = errors.New("response has no id")

// Error describes a failed store operation.
type Error struct {
	Op         string // "list", "create", "update", "delete"
	Kind       error  // one of the Err* kinds above
	StatusCode int    // HTTP status, 0 when no response was received
	Err        error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return e.Op + ": " + msg
}

// Is reports whether target is the error's kind.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

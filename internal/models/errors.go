package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrBadRequest is returned when a write fails because the input was
	// structurally invalid at the storage boundary, e.g. an order creation
	// referencing a node that does not exist.
	ErrBadRequest = errors.New("bad request")

	// ErrConflict is returned when a conditional update matched no rows,
	// e.g. claiming a tow truck that is no longer available.
	ErrConflict = errors.New("resource state conflict")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// PartialFailureError marks a multi-step dispatch that committed one or more
// steps before a later step failed. The committed writes are not rolled back;
// callers receive this error even though irreversible side effects occurred.
type PartialFailureError struct {
	Step string // the step that failed
	Err  error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("dispatch partially failed at step %q: %v", e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the shape of every error payload returned by the API.
type ErrorResponse struct {
	Message string `json:"message"`
}

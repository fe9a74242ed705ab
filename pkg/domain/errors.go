package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories and services when no record matches an id.
var ErrNotFound = errors.New("not found")

// ErrQuit is returned by the exit action to request the end of the session.
var ErrQuit = errors.New("quit requested")

// ErrInterrupted is returned when the operator interrupts a prompt (Ctrl+C in raw mode).
var ErrInterrupted = errors.New("interrupted")

// InputError reports invalid operator input. The runner prints the message and
// keeps the session going.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Inputf builds an InputError with a formatted message.
func Inputf(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err wraps an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

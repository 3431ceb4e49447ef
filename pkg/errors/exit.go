package errors

import (
	"errors"
	"fmt"
)

// HasExitCode is implemented by errors that carry the code the program
// should exit with when they reach main.
type HasExitCode interface {
	error
	ExitCode() int
}

// ExitError reports that the program must terminate with Code. It is
// returned by dispatch sites after event listeners ran, and by default
// handlers for error events. Code may be 0.
type ExitError struct {
	Code    int
	Event   string // name of the event kind that ended the program
	Message string
	Handled bool // listeners or a default handler already produced output
}

// Error implements the error interface
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Event != "" {
		return fmt.Sprintf("%s: exit status %d", e.Event, e.Code)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode implements HasExitCode
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Is implements errors.Is support
func (e *ExitError) Is(target error) bool {
	return target == ErrTerminated
}

// NewExitError creates an ExitError for an event that was handled.
func NewExitError(event string, code int, message string) *ExitError {
	return &ExitError{Code: code, Event: event, Message: message, Handled: true}
}

// WithExitCodeIfNone attaches code to err unless err already carries one.
// A nil err stays nil.
func WithExitCodeIfNone(err error, code int) error {
	if err == nil {
		return nil
	}
	var ec HasExitCode
	if errors.As(err, &ec) {
		return err
	}
	return withExitCode{error: err, code: code}
}

type withExitCode struct {
	error
	code int
}

func (w withExitCode) Unwrap() error { return w.error }

func (w withExitCode) ExitCode() int { return w.code }

var _ HasExitCode = withExitCode{}

// ExitCode returns the exit code carried by err. A nil error maps to 0 and
// an error without a code maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec HasExitCode
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

// IsHandled reports whether err already produced user-facing output, in which
// case main should exit without printing it again.
func IsHandled(err error) bool {
	var ee *ExitError
	return errors.As(err, &ee) && ee.Handled
}

package cmdevents

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/cmdevents/pkg/errors"
)

// Option is a function that configures a Program
type Option func(*Program) error

// WithLogger sets the logger used by the program and its emitter
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Program) error {
		if logger != nil {
			p.logger = logger
		}
		return nil
	}
}

// WithRenderer replaces the built-in output
func WithRenderer(r Renderer) Option {
	return func(p *Program) error {
		if r == nil {
			return errors.NewValidationError("renderer", nil, "renderer cannot be nil")
		}
		p.renderer = r
		return nil
	}
}

// WithOutput sets the writers for regular and error output
func WithOutput(stdout, stderr io.Writer) Option {
	return func(p *Program) error {
		if stdout == nil || stderr == nil {
			return errors.NewValidationError("output", nil, "writers cannot be nil")
		}
		p.stdout = stdout
		p.stderr = stderr
		return nil
	}
}

// WithExitFunc makes the program call fn with the exit code as soon as
// listeners terminate an event, instead of only returning the code. Pass
// os.Exit to end the process inside dispatch.
func WithExitFunc(fn func(int)) Option {
	return func(p *Program) error {
		p.exit = fn
		return nil
	}
}

// WithErrorExitCode sets the exit code used for error events
func WithErrorExitCode(code int) Option {
	return func(p *Program) error {
		if code < 0 || code > 125 {
			return errors.NewValidationError("error_exit_code", code, "must be between 0 and 125")
		}
		p.errorExitCode = code
		return nil
	}
}

// WithArgs sets the raw arguments attached to payloads
func WithArgs(args []string) Option {
	return func(p *Program) error {
		p.SetArgs(args)
		return nil
	}
}

// Package cmdevents connects a command tree to an event emitter so that
// applications can override how the framework reacts to parsing conditions.
//
// A Program owns the emitter and raises one event per detected condition.
// When no listener is registered for the event the built-in behavior runs
// (help, version or an error message). When listeners are registered they run
// in priority order and the program is asked to terminate with the payload's
// exit code. OutputHelp is the exception: its built-in help always renders and
// listeners run afterwards.
package cmdevents

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/cmdevents/internal/render"
	"github.com/agentstation/cmdevents/pkg/command"
	"github.com/agentstation/cmdevents/pkg/constants"
	"github.com/agentstation/cmdevents/pkg/errors"
	"github.com/agentstation/cmdevents/pkg/events"
	"github.com/agentstation/cmdevents/pkg/logging"
)

// Renderer produces the built-in output used when no listener overrides an event.
type Renderer interface {
	Help(w io.Writer, root *command.Command) error
	CommandHelp(w io.Writer, cmd *command.Command) error
	Version(w io.Writer, root *command.Command) error
	Error(w io.Writer, cfg events.EventConfig) error
}

// Program raises events for one command tree.
type Program struct {
	root     *command.Command
	emitter  *events.Emitter
	renderer Renderer
	stdout   io.Writer
	stderr   io.Writer
	logger   *zerolog.Logger

	// exit, when set, is called with the exit code as soon as listeners
	// terminate an event. Otherwise the code is returned as *errors.ExitError.
	exit func(int)

	errorExitCode int
	args          []string
}

// New creates a Program for the given root command.
func New(root *command.Command, opts ...Option) (*Program, error) {
	if root == nil {
		return nil, errors.NewValidationError("root", nil, "root command is required")
	}

	p := &Program{
		root:          root,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		logger:        logging.NopPtr(),
		errorExitCode: constants.ExitUsage,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if p.renderer == nil {
		p.renderer = render.New()
	}
	p.emitter = events.NewEmitter(events.WithLogger(p.logger))

	return p, nil
}

// Root returns the root command.
func (p *Program) Root() *command.Command {
	return p.root
}

// Stdout returns the writer used for help and version output.
func (p *Program) Stdout() io.Writer {
	return p.stdout
}

// Stderr returns the writer used for error output.
func (p *Program) Stderr() io.Writer {
	return p.stderr
}

// Logger returns the program logger.
func (p *Program) Logger() *zerolog.Logger {
	return p.logger
}

// ErrorExitCode returns the exit code error events default to.
func (p *Program) ErrorExitCode() int {
	return p.errorExitCode
}

// SetArgs records the raw arguments being parsed. They are attached to every
// payload raised afterwards.
func (p *Program) SetArgs(args []string) {
	p.args = append([]string(nil), args...)
}

// NewConfig returns a fresh payload for p with the program, the current
// arguments and the default exit code of the payload's kind filled in.
func (p *Program) NewConfig(payload events.Payload) events.EventConfig {
	code := constants.ExitSuccess
	if payload.Event().IsError() {
		code = p.errorExitCode
	}
	return events.NewConfig().
		WithPayload(payload).
		WithProgram(p.root).
		WithArgs(p.args).
		WithArgCount(len(p.args)).
		WithExitCode(code)
}

// Raise dispatches cfg and applies the event's override policy. It always
// returns a non-nil error: an *errors.ExitError carrying the code the program
// should exit with, or the error of the default renderer.
func (p *Program) Raise(cfg events.EventConfig) error {
	ev := cfg.Event()
	log := p.logger.With().Stringer("event", ev).Int("exit_code", cfg.ExitCode()).Logger()
	if cmd, ok := cfg.MatchedCommand(); ok {
		log = log.With().Str("command", cmd.Path()).Logger()
	}
	log.Debug().Str("policy", ev.Policy().String()).Msg("raising event")

	if ev.Policy() == events.PolicySupplement {
		if err := p.defaultBehavior(cfg); err != nil {
			return err
		}
		if d := p.emitter.Emit(cfg); d.ShouldTerminate() {
			return p.terminate(ev, d)
		}
		return errors.NewExitError(ev.String(), cfg.ExitCode(), "")
	}

	if d := p.emitter.Emit(cfg); d.ShouldTerminate() {
		log.Debug().Msg("default behavior overridden by listeners")
		return p.terminate(ev, d)
	}

	if err := p.defaultBehavior(cfg); err != nil {
		return err
	}
	return errors.NewExitError(ev.String(), cfg.ExitCode(), "")
}

func (p *Program) terminate(ev events.Event, d events.Directive) error {
	if p.exit != nil {
		p.exit(d.ExitCode())
	}
	return errors.NewExitError(ev.String(), d.ExitCode(), "")
}

func (p *Program) defaultBehavior(cfg events.EventConfig) error {
	var err error
	switch cfg.Event() {
	case events.OutputHelp:
		err = p.renderer.Help(p.stdout, p.root)
	case events.OutputCommandHelp:
		target := p.root
		if cmd, ok := cfg.MatchedCommand(); ok {
			target = cmd
		}
		err = p.renderer.CommandHelp(p.stdout, target)
	case events.OutputVersion:
		err = p.renderer.Version(p.stdout, p.root)
	default:
		err = p.renderer.Error(p.stderr, cfg)
	}
	return errors.WrapIO("write", cfg.Event().String(), err)
}

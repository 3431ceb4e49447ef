// Package overrides loads declarative listener rules from YAML and registers
// them on an emitter or program.
//
// A file looks like:
//
//	overrides:
//	  - event: UnknownCommand
//	    priority: -1
//	    message: 'no such command "{{.Name}}", try {{.Program}} --help'
//	  - event: errors
//	    message: "exiting with {{.ExitCode}}"
//	    stream: stderr
//
// Each message is a text/template rendered against a View of the payload.
package overrides

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/cmdevents/pkg/errors"
	"github.com/agentstation/cmdevents/pkg/events"
	"github.com/agentstation/cmdevents/pkg/logging"
)

// Targets that expand to more than one kind.
const (
	TargetAll       = "all"
	TargetErrors    = "errors"
	TargetBeforeAll = "before-all"
	TargetAfterAll  = "after-all"
)

// Output streams.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// Registrar is implemented by *events.Emitter and *cmdevents.Program.
type Registrar interface {
	On(event events.Event, listener events.Listener, priority int)
	OnAll(listener events.Listener, priority int)
	OnAllErrors(listener events.Listener, priority int)
	InsertBeforeAll(listener events.Listener)
	InsertAfterAll(listener events.Listener)
}

// File is a parsed overrides document.
type File struct {
	Path  string `yaml:"-"`
	Rules []Rule `yaml:"overrides"`
}

// Rule registers one listener that prints a message.
type Rule struct {
	Event    string `yaml:"event"`
	Priority int    `yaml:"priority,omitempty"`
	Message  string `yaml:"message"`
	Stream   string `yaml:"stream,omitempty"`
}

// Load reads and validates the overrides file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("overrides file", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	f, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Parse decodes and validates an overrides document.
func Parse(data []byte) (*File, error) {
	return parse(data, "")
}

func parse(data []byte, path string) (*File, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return nil, errors.NewParseError("yaml", path, yaml.FormatError(err, false, true), err)
	}
	f.Path = path
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every rule and reports all problems at once.
func (f *File) Validate() error {
	var errs []error
	for i, r := range f.Rules {
		if err := r.validate(); err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (r Rule) validate() error {
	if _, err := r.target(); err != nil {
		return err
	}
	switch r.Stream {
	case "", StreamStdout, StreamStderr:
	default:
		return errors.NewValidationError("stream", r.Stream, "must be stdout or stderr")
	}
	if r.Message == "" {
		return errors.NewValidationError("message", r.Message, "is required")
	}
	if _, err := r.compile(); err != nil {
		return err
	}
	if r.isBootstrap() && r.Priority != 0 {
		return errors.NewValidationError("priority", r.Priority, r.Event+" rules use a fixed priority")
	}
	return nil
}

// target resolves the rule's event field. Multi-kind targets return 0.
func (r Rule) target() (events.Event, error) {
	switch strings.ToLower(strings.TrimSpace(r.Event)) {
	case TargetAll, TargetErrors, TargetBeforeAll, TargetAfterAll:
		return 0, nil
	}
	return events.ParseEvent(r.Event)
}

func (r Rule) isBootstrap() bool {
	e := strings.ToLower(strings.TrimSpace(r.Event))
	return e == TargetBeforeAll || e == TargetAfterAll
}

func (r Rule) compile() (*template.Template, error) {
	tmpl, err := template.New(r.Event).Option("missingkey=error").Funcs(funcs).Parse(r.Message)
	if err != nil {
		return nil, errors.NewParseError("template", "", err.Error(), err)
	}
	return tmpl, nil
}

// Apply registers one listener per rule on reg. Listener output goes to
// stdout or stderr according to the rule's stream; when unset, error kinds
// write to stderr. Rendering failures are logged through the context logger.
func (f *File) Apply(ctx context.Context, reg Registrar, stdout, stderr io.Writer) error {
	if err := f.Validate(); err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	for _, r := range f.Rules {
		tmpl, err := r.compile()
		if err != nil {
			return err
		}
		stream := r.Stream
		l := func(cfg events.EventConfig) {
			w := stdout
			if stream == StreamStderr || (stream == "" && cfg.Event().IsError()) {
				w = stderr
			}
			if err := tmpl.Execute(w, NewView(cfg)); err != nil {
				logger.Warn().Err(err).Stringer("event", cfg.Event()).Msg("override message failed to render")
				return
			}
			_, _ = io.WriteString(w, "\n")
		}

		switch strings.ToLower(strings.TrimSpace(r.Event)) {
		case TargetAll:
			reg.OnAll(l, r.Priority)
		case TargetErrors:
			reg.OnAllErrors(l, r.Priority)
		case TargetBeforeAll:
			reg.InsertBeforeAll(l)
		case TargetAfterAll:
			reg.InsertAfterAll(l)
		default:
			ev, _ := r.target()
			reg.On(ev, l, r.Priority)
		}
		logger.Debug().Str("target", r.Event).Int("priority", r.Priority).Msg("override applied")
	}
	return nil
}

// Marshal encodes f as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.MarshalWithOptions(f, yaml.IndentSequence(true))
}

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"join":  strings.Join,
	"title": func(s string) string { return cases.Title(language.English).String(s) },
}

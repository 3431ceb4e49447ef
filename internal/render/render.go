// Package render produces the built-in help, version and error output that
// runs when no listener overrides an event.
package render

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/cmdevents/pkg/command"
	"github.com/agentstation/cmdevents/pkg/events"
)

// Renderer writes default output in plain text.
type Renderer struct {
	errStyle   *color.Color
	hintStyle  *color.Color
	titleStyle *color.Color
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithNoColor disables ANSI colors.
func WithNoColor(noColor bool) Option {
	return func(r *Renderer) {
		if noColor {
			r.errStyle.DisableColor()
			r.hintStyle.DisableColor()
			r.titleStyle.DisableColor()
		}
	}
}

// New creates a Renderer. Colors follow fatih/color's terminal detection
// unless disabled.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		errStyle:   color.New(color.FgRed, color.Bold),
		hintStyle:  color.New(color.FgCyan),
		titleStyle: color.New(color.Bold),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Help writes the help of the root command.
func (r *Renderer) Help(w io.Writer, root *command.Command) error {
	return r.CommandHelp(w, root)
}

// CommandHelp writes usage, description, subcommands and flags of cmd.
func (r *Renderer) CommandHelp(w io.Writer, cmd *command.Command) error {
	if d := cmd.Description(); d != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", d); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s\n  %s\n", r.titleStyle.Sprint("Usage:"), usage(cmd)); err != nil {
		return err
	}

	if subs := cmd.Subcommands(); len(subs) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", r.titleStyle.Sprint("Commands:")); err != nil {
			return err
		}
		rows := make([][]string, 0, len(subs))
		for _, s := range subs {
			rows = append(rows, []string{s.Name(), s.Description()})
		}
		if err := Table(w, Data{Headers: []string{"Command", "Description"}, Rows: rows}); err != nil {
			return err
		}
	}

	if opts := cmd.Options(); len(opts) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", r.titleStyle.Sprint("Flags:")); err != nil {
			return err
		}
		for _, o := range opts {
			if _, err := fmt.Fprintf(w, "  %s  %s\n", flagSpec(o), o.Usage); err != nil {
				return err
			}
		}
	}
	return nil
}

// Version writes "<name> <version>".
func (r *Renderer) Version(w io.Writer, root *command.Command) error {
	v := root.GetVersion()
	if v == "" {
		v = "(devel)"
	}
	_, err := fmt.Fprintf(w, "%s %s\n", root.Name(), v)
	return err
}

// Error writes the message of an error event followed by a hint.
func (r *Renderer) Error(w io.Writer, cfg events.EventConfig) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", r.errStyle.Sprint(SymbolError+" Error:"), Message(cfg)); err != nil {
		return err
	}
	if h, ok := HintFor(cfg); ok {
		if _, err := fmt.Fprintln(w, r.hintStyle.Sprint(h.String())); err != nil {
			return err
		}
	}
	return nil
}

// Message describes an event occurrence in one line.
func Message(cfg events.EventConfig) string {
	where := ""
	if cmd, ok := cfg.MatchedCommand(); ok {
		where = fmt.Sprintf(" for %q", cmd.Path())
	}

	switch p := cfg.Payload().(type) {
	case events.UnknownCommandPayload:
		return fmt.Sprintf("unknown command %q%s", p.Name, where)
	case events.UnknownOptionPayload:
		return fmt.Sprintf("unknown flag %s%s", p.Option, where)
	case events.OptionMissingArgumentPayload:
		return fmt.Sprintf("flag %s needs an argument", p.Option)
	case events.MissingRequiredArgumentPayload:
		return fmt.Sprintf("missing required argument <%s> for %q", p.Argument, p.Command)
	case events.UnresolvedArgumentPayload:
		return fmt.Sprintf("unexpected argument %q%s", p.Argument, where)
	case events.OutputVersionPayload:
		return "version " + p.Version
	case events.OutputCommandHelpPayload:
		return "help for " + p.Command
	case events.OutputHelpPayload:
		return "help"
	default:
		return cfg.ErrorString()
	}
}

// Title turns an event kind into a human readable heading,
// e.g. UnknownCommand becomes "Unknown Command".
func Title(ev events.Event) string {
	var b strings.Builder
	for i, r := range ev.String() {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return cases.Title(language.English).String(b.String())
}

// EventTable writes the event taxonomy with policy and bulk-helper coverage.
func EventTable(w io.Writer) error {
	rows := make([][]string, 0, len(events.All()))
	for _, ev := range events.All() {
		rows = append(rows, []string{
			ev.String(),
			Title(ev),
			ev.Policy().String(),
			yesNo(ev.InCommon()),
			yesNo(slices.Contains(events.Errors(), ev)),
		})
	}
	return Table(w, Data{
		Headers: []string{"Event", "Title", "Policy", "OnAll", "OnAllErrors"},
		Rows:    rows,
	})
}

func flagSpec(o command.Option) string {
	spec := "--" + o.Long
	if o.Short != "" {
		spec = "-" + o.Short + ", " + spec
	}
	if o.TakesValue {
		spec += " <value>"
	}
	return spec
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

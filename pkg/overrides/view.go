package overrides

import (
	"github.com/agentstation/cmdevents/pkg/events"
)

// View is the data a rule message is rendered against.
type View struct {
	Event    string
	Program  string
	Command  string
	Args     []string
	ArgCount int
	ExitCode int
	Error    string
	Info     string

	// Payload fields; empty when the kind does not carry them.
	Name     string
	Option   string
	Argument string
	Version  string
}

// NewView flattens cfg for templates.
func NewView(cfg events.EventConfig) View {
	v := View{
		Event:    cfg.Event().String(),
		Program:  cfg.Program().Name(),
		Args:     cfg.Args(),
		ArgCount: cfg.ArgCount(),
		ExitCode: cfg.ExitCode(),
		Error:    cfg.ErrorString(),
		Info:     cfg.Info(),
	}
	if cmd, ok := cfg.MatchedCommand(); ok {
		v.Command = cmd.Path()
	}

	switch p := cfg.Payload().(type) {
	case events.MissingRequiredArgumentPayload:
		v.Name = p.Command
		v.Argument = p.Argument
	case events.OptionMissingArgumentPayload:
		v.Option = p.Option
	case events.OutputCommandHelpPayload:
		v.Name = p.Command
	case events.OutputVersionPayload:
		v.Version = p.Version
	case events.UnknownCommandPayload:
		v.Name = p.Name
	case events.UnknownOptionPayload:
		v.Option = p.Option
	case events.UnresolvedArgumentPayload:
		v.Argument = p.Argument
	}
	return v
}

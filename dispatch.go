package cmdevents

import (
	"strings"

	"github.com/agentstation/cmdevents/pkg/command"
	"github.com/agentstation/cmdevents/pkg/events"
)

// OutputHelp prints the program help and then runs OutputHelp listeners.
func (p *Program) OutputHelp() error {
	return p.Raise(p.NewConfig(events.OutputHelpPayload{}))
}

// OutputCommandHelp raises OutputCommandHelp for cmd.
func (p *Program) OutputCommandHelp(cmd *command.Command) error {
	return p.Raise(p.NewConfig(events.OutputCommandHelpPayload{Command: cmd.Name()}).
		WithMatchedCommand(cmd))
}

// OutputVersion raises OutputVersion with the program version.
func (p *Program) OutputVersion() error {
	return p.Raise(p.NewConfig(events.OutputVersionPayload{Version: p.root.GetVersion()}))
}

// UnknownCommand raises UnknownCommand for name typed under parent.
// suggestions, if any, are passed to listeners as a comma separated info string.
func (p *Program) UnknownCommand(parent *command.Command, name string, suggestions ...string) error {
	return p.Raise(p.NewConfig(events.UnknownCommandPayload{Name: name}).
		WithMatchedCommand(parent).
		WithInfo(strings.Join(suggestions, ",")))
}

// UnknownOption raises UnknownOption for an unrecognized flag on cmd.
func (p *Program) UnknownOption(cmd *command.Command, option string) error {
	return p.Raise(p.NewConfig(events.UnknownOptionPayload{Option: option}).
		WithMatchedCommand(cmd))
}

// OptionMissingArgument raises OptionMissingArgument for a flag given without its value.
func (p *Program) OptionMissingArgument(cmd *command.Command, option string) error {
	return p.Raise(p.NewConfig(events.OptionMissingArgumentPayload{Option: option}).
		WithMatchedCommand(cmd))
}

// MissingRequiredArgument raises MissingRequiredArgument for cmd.
func (p *Program) MissingRequiredArgument(cmd *command.Command, argument string) error {
	return p.Raise(p.NewConfig(events.MissingRequiredArgumentPayload{Command: cmd.Name(), Argument: argument}).
		WithMatchedCommand(cmd))
}

// UnresolvedArgument raises UnresolvedArgument for a positional argument cmd does not accept.
func (p *Program) UnresolvedArgument(cmd *command.Command, argument string) error {
	return p.Raise(p.NewConfig(events.UnresolvedArgumentPayload{Argument: argument}).
		WithMatchedCommand(cmd))
}

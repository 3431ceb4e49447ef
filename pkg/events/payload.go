package events

import "strings"

// Payload is the typed form of the data carried for one event kind. Each
// variant holds only the fields its kind uses. The set of variants is closed.
type Payload interface {
	// Event returns the kind the payload belongs to.
	Event() Event
	// errorString encodes the payload into the flat EventConfig error string.
	errorString() string
}

// MissingRequiredArgumentPayload names the matched command and the absent argument.
// Its error string is "command,argument" and decoding splits at the first
// comma, so a command name containing a comma does not survive the round trip.
type MissingRequiredArgumentPayload struct {
	Command  string
	Argument string
}

// OptionMissingArgumentPayload names the option whose value is missing.
type OptionMissingArgumentPayload struct {
	Option string
}

// OutputCommandHelpPayload names the command help was requested for.
type OutputCommandHelpPayload struct {
	Command string
}

// OutputHelpPayload carries nothing.
type OutputHelpPayload struct{}

// OutputVersionPayload carries the program version.
type OutputVersionPayload struct {
	Version string
}

// UnknownCommandPayload carries the unrecognized command name.
type UnknownCommandPayload struct {
	Name string
}

// UnknownOptionPayload carries the unknown option as typed.
type UnknownOptionPayload struct {
	Option string
}

// UnresolvedArgumentPayload carries the argument that matched nothing.
type UnresolvedArgumentPayload struct {
	Argument string
}

func (MissingRequiredArgumentPayload) Event() Event { return MissingRequiredArgument }
func (OptionMissingArgumentPayload) Event() Event   { return OptionMissingArgument }
func (OutputCommandHelpPayload) Event() Event       { return OutputCommandHelp }
func (OutputHelpPayload) Event() Event              { return OutputHelp }
func (OutputVersionPayload) Event() Event           { return OutputVersion }
func (UnknownCommandPayload) Event() Event          { return UnknownCommand }
func (UnknownOptionPayload) Event() Event           { return UnknownOption }
func (UnresolvedArgumentPayload) Event() Event      { return UnresolvedArgument }

func (p MissingRequiredArgumentPayload) errorString() string {
	return p.Command + "," + p.Argument
}
func (p OptionMissingArgumentPayload) errorString() string { return p.Option }
func (p OutputCommandHelpPayload) errorString() string     { return p.Command }
func (OutputHelpPayload) errorString() string              { return "" }
func (p OutputVersionPayload) errorString() string         { return p.Version }
func (p UnknownCommandPayload) errorString() string        { return p.Name }
func (p UnknownOptionPayload) errorString() string         { return p.Option }
func (p UnresolvedArgumentPayload) errorString() string    { return p.Argument }

// decodePayload turns the flat representation back into the typed variant.
// It returns nil for an invalid event kind.
func decodePayload(ev Event, s string) Payload {
	switch ev {
	case MissingRequiredArgument:
		cmd, arg, _ := strings.Cut(s, ",")
		return MissingRequiredArgumentPayload{Command: cmd, Argument: arg}
	case OptionMissingArgument:
		return OptionMissingArgumentPayload{Option: s}
	case OutputCommandHelp:
		return OutputCommandHelpPayload{Command: s}
	case OutputHelp:
		return OutputHelpPayload{}
	case OutputVersion:
		return OutputVersionPayload{Version: s}
	case UnknownCommand:
		return UnknownCommandPayload{Name: s}
	case UnknownOption:
		return UnknownOptionPayload{Option: s}
	case UnresolvedArgument:
		return UnresolvedArgumentPayload{Argument: s}
	default:
		return nil
	}
}

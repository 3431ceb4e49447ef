package events

import (
	"fmt"
	"strings"

	"github.com/agentstation/cmdevents/pkg/errors"
)

// Event is a condition kind the framework can raise while parsing input.
type Event int

const (
	// MissingRequiredArgument is raised when a required positional argument is
	// absent. The payload carries the matched command name and the missing
	// argument name, comma separated. Listeners replace the default behavior.
	MissingRequiredArgument Event = iota + 1

	// OptionMissingArgument is raised when an option that takes a value was
	// given without one. The payload carries the option name. Listeners replace
	// the default behavior.
	OptionMissingArgument

	// OutputCommandHelp is raised when help is requested for a specific
	// command. The payload carries the command name. Listeners replace the
	// default behavior. Not covered by OnAll.
	OutputCommandHelp

	// OutputHelp is raised whenever program help is printed. The payload
	// carries an empty string. Listeners do NOT override the built-in help;
	// they run after it.
	OutputHelp

	// OutputVersion is raised when version output is requested. The payload
	// carries the program version. Listeners replace the default behavior.
	OutputVersion

	// UnknownCommand is raised when a command could not be matched. The
	// payload carries the unrecognized name. Listeners replace the default
	// behavior.
	UnknownCommand

	// UnknownOption is raised for an unknown flag or option. The payload
	// carries the option as typed. Listeners replace the default behavior.
	UnknownOption

	// UnresolvedArgument is raised for a positional argument the matched
	// command does not accept. The payload carries the argument. Listeners
	// replace the default behavior. Not covered by OnAll.
	UnresolvedArgument
)

// Policy states how registered listeners relate to the built-in behavior.
type Policy int

const (
	// PolicyReplace means listeners fully replace the default behavior.
	PolicyReplace Policy = iota
	// PolicySupplement means the default behavior still runs and listeners
	// run in addition to it.
	PolicySupplement
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyReplace:
		return "replace"
	case PolicySupplement:
		return "supplement"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

var eventNames = map[Event]string{
	MissingRequiredArgument: "MissingRequiredArgument",
	OptionMissingArgument:   "OptionMissingArgument",
	OutputCommandHelp:       "OutputCommandHelp",
	OutputHelp:              "OutputHelp",
	OutputVersion:           "OutputVersion",
	UnknownCommand:          "UnknownCommand",
	UnknownOption:           "UnknownOption",
	UnresolvedArgument:      "UnresolvedArgument",
}

// All returns every event kind in declaration order.
func All() []Event {
	return []Event{
		MissingRequiredArgument,
		OptionMissingArgument,
		OutputCommandHelp,
		OutputHelp,
		OutputVersion,
		UnknownCommand,
		UnknownOption,
		UnresolvedArgument,
	}
}

// Common returns the six kinds covered by Emitter.OnAll.
func Common() []Event {
	return append([]Event{OutputHelp, OutputVersion}, Errors()...)
}

// Errors returns the four kinds covered by Emitter.OnAllErrors.
func Errors() []Event {
	return []Event{
		MissingRequiredArgument,
		OptionMissingArgument,
		UnknownCommand,
		UnknownOption,
	}
}

// Valid reports whether e is one of the declared kinds.
func (e Event) Valid() bool {
	_, ok := eventNames[e]
	return ok
}

// String returns the event name.
func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Policy returns the override policy of the event kind. Only OutputHelp
// supplements the default behavior.
func (e Event) Policy() Policy {
	if e == OutputHelp {
		return PolicySupplement
	}
	return PolicyReplace
}

// IsError reports whether the kind signals a user input error. Error kinds
// default to a non-zero exit code.
func (e Event) IsError() bool {
	switch e {
	case MissingRequiredArgument, OptionMissingArgument, UnknownCommand, UnknownOption, UnresolvedArgument:
		return true
	default:
		return false
	}
}

// InCommon reports whether the kind is covered by OnAll.
func (e Event) InCommon() bool {
	return e != OutputCommandHelp && e != UnresolvedArgument && e.Valid()
}

// MarshalText implements encoding.TextMarshaler.
func (e Event) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, errors.NewValidationError("event", int(e), "unknown event kind")
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Event) UnmarshalText(text []byte) error {
	parsed, err := ParseEvent(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseEvent resolves an event name. Matching ignores case, dashes and
// underscores, so "unknown-command" and "UnknownCommand" are equivalent.
func ParseEvent(name string) (Event, error) {
	key := normalize(name)
	for ev, n := range eventNames {
		if normalize(n) == key {
			return ev, nil
		}
	}
	return 0, &errors.UnknownEventError{Name: name}
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

package events

import (
	"github.com/agentstation/cmdevents/pkg/command"
)

// placeholderProgram names the program used by configs that were never
// given one.
const placeholderProgram = "none"

// EventConfig is the payload handed to listeners for one emission.
//
// It is a value type. Every With method returns a new config with one field
// replaced and leaves the receiver untouched, so configs can be built with a
// chain of calls starting from NewConfig. Slices are copied on the way in and
// on the way out.
type EventConfig struct {
	args       []string
	argCount   int
	errorStr   string
	exitCode   int
	event      Event
	matchedCmd *command.Command
	info       string
	program    *command.Command
}

// NewConfig returns a fully populated default config: OutputHelp, exit code 0,
// empty strings and args, no matched command and a placeholder program.
// Call it once per emission; configs are not meant to be reused.
func NewConfig() EventConfig {
	return EventConfig{
		args:    []string{},
		event:   OutputHelp,
		program: command.New(placeholderProgram),
	}
}

// Args returns a copy of the arguments.
func (c EventConfig) Args() []string {
	return append([]string{}, c.args...)
}

// ArgCount returns the argument count.
func (c EventConfig) ArgCount() int {
	return c.argCount
}

// ErrorString returns the message string. Its meaning depends on the event
// kind; Payload returns the typed interpretation.
func (c EventConfig) ErrorString() string {
	return c.errorStr
}

// ExitCode returns the exit code the program terminates with after listeners run.
func (c EventConfig) ExitCode() int {
	return c.exitCode
}

// Event returns the event kind.
func (c EventConfig) Event() Event {
	return c.event
}

// MatchedCommand returns the matched command, if any. The command belongs to
// the program's tree and must not be modified.
func (c EventConfig) MatchedCommand() (*command.Command, bool) {
	return c.matchedCmd, c.matchedCmd != nil
}

// Info returns the free-form additional info.
func (c EventConfig) Info() string {
	return c.info
}

// Program returns the root command of the emitting program.
func (c EventConfig) Program() *command.Command {
	return c.program
}

// Payload returns the typed payload for the config's event kind.
func (c EventConfig) Payload() Payload {
	return decodePayload(c.event, c.errorStr)
}

// WithArgs replaces the arguments.
func (c EventConfig) WithArgs(args []string) EventConfig {
	c.args = append([]string{}, args...)
	return c
}

// WithArgCount replaces the argument count.
func (c EventConfig) WithArgCount(n int) EventConfig {
	c.argCount = n
	return c
}

// WithExitCode replaces the exit code.
func (c EventConfig) WithExitCode(code int) EventConfig {
	c.exitCode = code
	return c
}

// WithErrorString replaces the message string.
func (c EventConfig) WithErrorString(s string) EventConfig {
	c.errorStr = s
	return c
}

// WithEvent replaces the event kind.
func (c EventConfig) WithEvent(ev Event) EventConfig {
	c.event = ev
	return c
}

// WithMatchedCommand replaces the matched command. Passing nil clears it.
func (c EventConfig) WithMatchedCommand(cmd *command.Command) EventConfig {
	c.matchedCmd = cmd
	return c
}

// WithInfo replaces the additional info.
func (c EventConfig) WithInfo(info string) EventConfig {
	c.info = info
	return c
}

// WithProgram replaces the program reference.
func (c EventConfig) WithProgram(p *command.Command) EventConfig {
	c.program = p
	return c
}

// WithPayload sets the event kind and the message string from a typed payload.
func (c EventConfig) WithPayload(p Payload) EventConfig {
	c.event = p.Event()
	c.errorStr = p.errorString()
	return c
}

// clone returns a copy that shares no mutable state with c.
func (c EventConfig) clone() EventConfig {
	c.args = append([]string{}, c.args...)
	return c
}

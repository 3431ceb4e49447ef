package render

import (
	"fmt"
	"strings"

	"github.com/agentstation/cmdevents/pkg/command"
	"github.com/agentstation/cmdevents/pkg/events"
)

// Hint is actionable guidance printed below an error.
type Hint struct {
	Message string
	Command string
}

// String returns a string representation of the hint.
func (h Hint) String() string {
	s := fmt.Sprintf("%s %s", SymbolHint, h.Message)
	if h.Command != "" {
		s += fmt.Sprintf("\n   Run: %s", h.Command)
	}
	return s
}

// HintFor returns the guidance for an error event, if there is any.
func HintFor(cfg events.EventConfig) (Hint, bool) {
	target := cfg.Program()
	if cmd, ok := cfg.MatchedCommand(); ok {
		target = cmd
	}
	helpCmd := target.Path() + " --help"

	switch p := cfg.Payload().(type) {
	case events.UnknownCommandPayload:
		if info := cfg.Info(); info != "" {
			return Hint{Message: "Did you mean " + quoteList(strings.Split(info, ",")) + "?"}, true
		}
		return Hint{Message: "See the available commands", Command: helpCmd}, true
	case events.UnknownOptionPayload:
		return Hint{Message: "See the supported flags", Command: helpCmd}, true
	case events.OptionMissingArgumentPayload:
		return Hint{Message: fmt.Sprintf("Pass a value, e.g. %s <value>", p.Option)}, true
	case events.MissingRequiredArgumentPayload:
		return Hint{Message: "See the command usage", Command: helpCmd}, true
	case events.UnresolvedArgumentPayload:
		return Hint{Message: "Remove the extra argument or check the usage", Command: helpCmd}, true
	default:
		return Hint{}, false
	}
}

func quoteList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			quoted = append(quoted, fmt.Sprintf("%q", it))
		}
	}
	return strings.Join(quoted, " or ")
}

// usage builds the one-line usage string of a command.
func usage(cmd *command.Command) string {
	parts := []string{cmd.Path()}
	if cmd.HasSubcommands() {
		parts = append(parts, "<command>")
	}
	if len(cmd.Options()) > 0 {
		parts = append(parts, "[flags]")
	}
	for _, a := range cmd.Arguments() {
		name := a.Name
		if a.Variadic {
			name += "..."
		}
		if a.Required {
			parts = append(parts, "<"+name+">")
		} else {
			parts = append(parts, "["+name+"]")
		}
	}
	return strings.Join(parts, " ")
}

package bridge

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentstation/cmdevents/pkg/command"
	"github.com/agentstation/cmdevents/pkg/constants"
)

// Mirror builds the command tree of root. Hidden commands are skipped.
func Mirror(root *cobra.Command) *command.Command {
	tree, _ := mirror(root)
	return tree
}

func mirror(root *cobra.Command) (*command.Command, map[*cobra.Command]*command.Command) {
	index := make(map[*cobra.Command]*command.Command)
	tree := mirrorNode(root, index)
	tree.Version(root.Version)
	return tree, index
}

func mirrorNode(c *cobra.Command, index map[*cobra.Command]*command.Command) *command.Command {
	node := command.New(c.Name()).Describe(c.Short)
	index[c] = node

	for _, sub := range c.Commands() {
		if sub.Hidden {
			continue
		}
		node.Subcommand(mirrorNode(sub, index))
	}

	if spec, ok := c.Annotations[constants.AnnotationArgs]; ok {
		for _, a := range ParseArgs(spec) {
			if a.Variadic {
				node.VariadicArgument(a.Name, a.Required)
			} else {
				node.Argument(a.Name, a.Required)
			}
		}
	} else if !node.HasSubcommands() {
		// Undeclared leaf commands accept anything, like cobra's default.
		node.VariadicArgument("args", false)
	}

	c.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		_, required := f.Annotations[cobra.BashCompOneRequiredFlag]
		node.Option(command.Option{
			Long:       f.Name,
			Short:      f.Shorthand,
			TakesValue: f.NoOptDefVal == "",
			Required:   required,
			Usage:      f.Usage,
		})
	})

	return node
}

// ParseArgs decodes an argument annotation such as "url ?dir" or "paths...".
// A leading "?" marks an optional argument and a trailing "..." a variadic one.
func ParseArgs(spec string) []command.Argument {
	fields := strings.Fields(spec)
	out := make([]command.Argument, 0, len(fields))
	for _, f := range fields {
		a := command.Argument{Required: true}
		if rest, ok := strings.CutPrefix(f, "?"); ok {
			a.Required = false
			f = rest
		}
		if rest, ok := strings.CutSuffix(f, "..."); ok {
			a.Variadic = true
			f = rest
		}
		if f == "" {
			continue
		}
		a.Name = f
		out = append(out, a)
	}
	return out
}

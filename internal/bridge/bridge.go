// Package bridge raises cmdevents events for the conditions cobra detects
// while parsing a command line.
package bridge

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/cmdevents"
	"github.com/agentstation/cmdevents/pkg/command"
	"github.com/agentstation/cmdevents/pkg/errors"
)

const versionFlag = "version"

// Bridge connects a cobra command tree to a Program.
type Bridge struct {
	root  *cobra.Command
	prog  *cmdevents.Program
	index map[*cobra.Command]*command.Command

	// pending holds the result of an event raised from a cobra hook that
	// cannot return errors, such as the help function.
	pending error
}

// New mirrors root into a command tree, creates the Program for it and
// installs the hooks that raise events. root must be fully built.
func New(root *cobra.Command, opts ...cmdevents.Option) (*Bridge, error) {
	if root.Version != "" && root.PersistentFlags().Lookup(versionFlag) == nil {
		root.PersistentFlags().Bool(versionFlag, false, "version for "+root.Name())
	}

	tree, index := mirror(root)
	prog, err := cmdevents.New(tree, opts...)
	if err != nil {
		return nil, err
	}

	b := &Bridge{root: root, prog: prog, index: index}
	b.attach()
	return b, nil
}

// Program returns the program events are raised on.
func (b *Bridge) Program() *cmdevents.Program {
	return b.prog
}

// Execute runs the cobra tree with args, or os.Args[1:] when args is nil.
// Errors produced by events are *errors.ExitError values. Other errors carry
// the program's error exit code unless they already have one.
func (b *Bridge) Execute(ctx context.Context, args []string) error {
	if args == nil {
		args = os.Args[1:]
	}
	b.prog.SetArgs(args)
	b.root.SetArgs(args)
	b.pending = nil

	if err := b.root.ExecuteContext(ctx); err != nil {
		return errors.WithExitCodeIfNone(err, b.prog.ErrorExitCode())
	}
	return b.pending
}

func (b *Bridge) attach() {
	// cobra prints its own version when Version is set; the flag is handled here.
	b.root.Version = ""
	b.root.SilenceErrors = true
	b.root.SilenceUsage = true

	b.root.SetHelpFunc(func(c *cobra.Command, _ []string) {
		b.pending = b.help(c)
	})
	b.root.SetFlagErrorFunc(b.flagError)
	b.root.SetHelpCommand(b.helpCommand())

	for c := range b.index {
		c.Args = b.validateArgs(c.Args)
		if !c.Runnable() {
			c.RunE = func(c *cobra.Command, _ []string) error {
				return b.help(c)
			}
		}
	}
}

func (b *Bridge) help(c *cobra.Command) error {
	if !c.HasParent() {
		return b.prog.OutputHelp()
	}
	return b.prog.OutputCommandHelp(b.node(c))
}

// helpCommand replaces cobra's help subcommand, which reports an unknown topic
// by printing root help.
func (b *Bridge) helpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		RunE: func(_ *cobra.Command, args []string) error {
			target, rest, err := b.root.Find(args)
			if err != nil || target == nil {
				return b.prog.UnknownCommand(b.prog.Root(), args[0], b.root.SuggestionsFor(args[0])...)
			}
			if len(rest) > 0 && target.HasAvailableSubCommands() {
				return b.prog.UnknownCommand(b.node(target), rest[0], target.SuggestionsFor(rest[0])...)
			}
			return b.help(target)
		},
	}
}

// node returns the mirrored command for c, or its nearest mirrored ancestor.
func (b *Bridge) node(c *cobra.Command) *command.Command {
	for ; c != nil; c = c.Parent() {
		if n, ok := b.index[c]; ok {
			return n
		}
	}
	return b.prog.Root()
}

func (b *Bridge) validateArgs(next cobra.PositionalArgs) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if f := c.Flags().Lookup(versionFlag); f != nil && f.Changed {
			return b.prog.OutputVersion()
		}

		node := b.node(c)
		if node.HasSubcommands() && len(node.Arguments()) == 0 && len(args) > 0 {
			return b.prog.UnknownCommand(node, args[0], c.SuggestionsFor(args[0])...)
		}
		if required := node.RequiredArguments(); len(args) < len(required) {
			return b.prog.MissingRequiredArgument(node, required[len(args)].Name)
		}
		if declared := node.Arguments(); !node.AcceptsArbitraryArguments() && len(args) > len(declared) {
			return b.prog.UnresolvedArgument(node, args[len(declared)])
		}

		if next != nil {
			return next(c, args)
		}
		return nil
	}
}

// pflag reports parse failures as plain errors; these prefixes identify them.
const (
	unknownFlagPrefix      = "unknown flag: "
	unknownShorthandPrefix = "unknown shorthand flag: "
	needsArgumentPrefix    = "flag needs an argument: "
)

func (b *Bridge) flagError(c *cobra.Command, err error) error {
	node := b.node(c)
	msg := err.Error()

	switch {
	case strings.HasPrefix(msg, unknownFlagPrefix):
		return b.prog.UnknownOption(node, optionName(strings.TrimPrefix(msg, unknownFlagPrefix)))
	case strings.HasPrefix(msg, unknownShorthandPrefix):
		return b.prog.UnknownOption(node, optionName(strings.TrimPrefix(msg, unknownShorthandPrefix)))
	case strings.HasPrefix(msg, needsArgumentPrefix):
		return b.prog.OptionMissingArgument(node, optionName(strings.TrimPrefix(msg, needsArgumentPrefix)))
	}

	b.prog.Logger().Debug().Err(err).Str("command", node.Path()).Msg("flag error not mapped to an event")
	return err
}

// optionName turns "--name" or "'n' in -nv" into the flag as typed.
func optionName(s string) string {
	if rest, ok := strings.CutPrefix(s, "'"); ok {
		if name, _, ok := strings.Cut(rest, "'"); ok {
			return "-" + name
		}
	}
	return s
}

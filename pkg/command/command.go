// Package command provides the read-only command tree that event payloads
// refer to. A tree is assembled once with the builder methods during program
// construction and is only read afterwards, so payloads can share pointers into
// it for as long as the program lives.
package command

import (
	"strings"
)

// Argument describes a positional argument accepted by a command.
type Argument struct {
	Name     string
	Required bool
	Variadic bool
}

// Option describes a flag accepted by a command.
type Option struct {
	Long       string
	Short      string
	TakesValue bool
	Required   bool
	Usage      string
}

// Command is a node in the command tree.
type Command struct {
	name        string
	version     string
	description string
	arguments   []Argument
	options     []Option
	subcommands []*Command
	parent      *Command
}

// New creates a command with the given name.
func New(name string) *Command {
	return &Command{name: name}
}

// Version sets the version string reported for the command.
func (c *Command) Version(v string) *Command {
	c.version = v
	return c
}

// Describe sets the command description.
func (c *Command) Describe(d string) *Command {
	c.description = d
	return c
}

// Argument declares a positional argument.
func (c *Command) Argument(name string, required bool) *Command {
	c.arguments = append(c.arguments, Argument{Name: name, Required: required})
	return c
}

// VariadicArgument declares a trailing argument that absorbs the remaining values.
func (c *Command) VariadicArgument(name string, required bool) *Command {
	c.arguments = append(c.arguments, Argument{Name: name, Required: required, Variadic: true})
	return c
}

// Option declares a flag.
func (c *Command) Option(opt Option) *Command {
	c.options = append(c.options, opt)
	return c
}

// Subcommand attaches sub as a child and returns the child for chaining.
func (c *Command) Subcommand(sub *Command) *Command {
	sub.parent = c
	c.subcommands = append(c.subcommands, sub)
	return sub
}

// Name returns the command name.
func (c *Command) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// GetVersion returns the version, inherited from the closest ancestor that has one.
func (c *Command) GetVersion() string {
	for n := c; n != nil; n = n.parent {
		if n.version != "" {
			return n.version
		}
	}
	return ""
}

// Description returns the command description.
func (c *Command) Description() string {
	return c.description
}

// Parent returns the parent command, or nil for the root.
func (c *Command) Parent() *Command {
	return c.parent
}

// Root walks up to the root of the tree.
func (c *Command) Root() *Command {
	n := c
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Arguments returns a copy of the declared positional arguments.
func (c *Command) Arguments() []Argument {
	return append([]Argument(nil), c.arguments...)
}

// Options returns a copy of the declared options.
func (c *Command) Options() []Option {
	return append([]Option(nil), c.options...)
}

// Subcommands returns a copy of the child commands.
func (c *Command) Subcommands() []*Command {
	return append([]*Command(nil), c.subcommands...)
}

// HasSubcommands reports whether the command has children.
func (c *Command) HasSubcommands() bool {
	return len(c.subcommands) > 0
}

// Find returns the direct subcommand with the given name.
func (c *Command) Find(name string) (*Command, bool) {
	for _, sub := range c.subcommands {
		if sub.name == name {
			return sub, true
		}
	}
	return nil, false
}

// FindPath resolves a sequence of subcommand names starting at c.
func (c *Command) FindPath(names ...string) (*Command, bool) {
	n := c
	for _, name := range names {
		next, ok := n.Find(name)
		if !ok {
			return nil, false
		}
		n = next
	}
	return n, true
}

// Path returns the space separated names from the root down to c.
func (c *Command) Path() string {
	var parts []string
	for n := c; n != nil; n = n.parent {
		parts = append(parts, n.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}

// RequiredArguments returns the positional arguments marked required, in order.
func (c *Command) RequiredArguments() []Argument {
	var out []Argument
	for _, a := range c.arguments {
		if a.Required {
			out = append(out, a)
		}
	}
	return out
}

// AcceptsArbitraryArguments reports whether the last argument is variadic.
func (c *Command) AcceptsArbitraryArguments() bool {
	return len(c.arguments) > 0 && c.arguments[len(c.arguments)-1].Variadic
}

// LookupOption finds an option by long or short name. Leading dashes are ignored.
func (c *Command) LookupOption(name string) (Option, bool) {
	name = strings.TrimLeft(name, "-")
	for n := c; n != nil; n = n.parent {
		for _, o := range n.options {
			if o.Long == name || (o.Short != "" && o.Short == name) {
				return o, true
			}
		}
	}
	return Option{}, false
}

package cmdevents_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cmdevents"
	"github.com/agentstation/cmdevents/internal/render"
	"github.com/agentstation/cmdevents/pkg/command"
	"github.com/agentstation/cmdevents/pkg/errors"
	"github.com/agentstation/cmdevents/pkg/events"
	"github.com/agentstation/cmdevents/pkg/logging"
)

type fixture struct {
	prog   *cmdevents.Program
	root   *command.Command
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	exits  []int
}

func newFixture(t *testing.T, opts ...cmdevents.Option) *fixture {
	t.Helper()
	return setupFixture(t, &fixture{}, opts...)
}

// newExitFixture installs an exit func that records codes in f.exits.
func newExitFixture(t *testing.T, opts ...cmdevents.Option) *fixture {
	t.Helper()
	f := &fixture{}
	return setupFixture(t, f, append(opts, f.recordExits())...)
}

func setupFixture(t *testing.T, f *fixture, opts ...cmdevents.Option) *fixture {
	t.Helper()

	root := command.New("git").Version("2.43.0").Describe("the stupid content tracker")
	root.Subcommand(command.New("clone")).Argument("url", true)

	f.root, f.stdout, f.stderr = root, &bytes.Buffer{}, &bytes.Buffer{}
	opts = append([]cmdevents.Option{
		cmdevents.WithOutput(f.stdout, f.stderr),
		cmdevents.WithRenderer(render.New(render.WithNoColor(true))),
	}, opts...)

	prog, err := cmdevents.New(root, opts...)
	require.NoError(t, err)
	f.prog = prog
	return f
}

func (f *fixture) recordExits() cmdevents.Option {
	return cmdevents.WithExitFunc(func(code int) { f.exits = append(f.exits, code) })
}

func TestNewRequiresRoot(t *testing.T) {
	_, err := cmdevents.New(nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestOptionsValidate(t *testing.T) {
	root := command.New("x")

	_, err := cmdevents.New(root, cmdevents.WithErrorExitCode(300))
	assert.True(t, errors.IsValidationError(err))

	_, err = cmdevents.New(root, cmdevents.WithRenderer(nil))
	assert.True(t, errors.IsValidationError(err))

	_, err = cmdevents.New(root, cmdevents.WithOutput(nil, io.Discard))
	assert.True(t, errors.IsValidationError(err))
}

func TestErrorEventDefault(t *testing.T) {
	f := newFixture(t)

	err := f.prog.UnknownCommand(f.root, "clon", "clone")

	require.Error(t, err)
	assert.Equal(t, 1, errors.ExitCode(err))
	assert.True(t, errors.IsHandled(err))
	assert.Contains(t, f.stderr.String(), `unknown command "clon" for "git"`)
	assert.Contains(t, f.stderr.String(), `Did you mean "clone"?`)
	assert.Empty(t, f.stdout.String())
}

func TestErrorEventOverridden(t *testing.T) {
	f := newFixture(t)
	var got []events.EventConfig
	f.prog.On(events.UnknownOption, func(cfg events.EventConfig) { got = append(got, cfg) }, 0)

	err := f.prog.UnknownOption(f.root, "--frobnicate")

	assert.Equal(t, 1, errors.ExitCode(err))
	assert.True(t, errors.IsTerminated(err))
	assert.Empty(t, f.stderr.String(), "default output must be replaced")
	require.Len(t, got, 1)
	assert.Equal(t, events.UnknownOptionPayload{Option: "--frobnicate"}, got[0].Payload())
	cmd, ok := got[0].MatchedCommand()
	require.True(t, ok)
	assert.Same(t, f.root, cmd)
	assert.Same(t, f.root, got[0].Program())
}

func TestOutputHelpSupplements(t *testing.T) {
	f := newFixture(t)
	var calls int
	f.prog.On(events.OutputHelp, func(events.EventConfig) { calls++ }, 0)

	err := f.prog.OutputHelp()

	assert.Equal(t, 0, errors.ExitCode(err))
	assert.Equal(t, 1, calls)
	assert.Contains(t, f.stdout.String(), "the stupid content tracker", "built-in help still renders")
}

func TestOutputHelpWithoutListeners(t *testing.T) {
	f := newFixture(t)
	err := f.prog.OutputHelp()
	assert.Equal(t, 0, errors.ExitCode(err))
	assert.Contains(t, f.stdout.String(), "Usage:")
}

func TestOutputVersionReplaced(t *testing.T) {
	f := newFixture(t)
	var version string
	f.prog.On(events.OutputVersion, func(cfg events.EventConfig) {
		version = cfg.Payload().(events.OutputVersionPayload).Version
	}, 0)

	err := f.prog.OutputVersion()

	assert.Equal(t, 0, errors.ExitCode(err))
	assert.Equal(t, "2.43.0", version)
	assert.Empty(t, f.stdout.String())
}

func TestOutputVersionDefault(t *testing.T) {
	f := newFixture(t)
	_ = f.prog.OutputVersion()
	assert.Equal(t, "git 2.43.0\n", f.stdout.String())
}

func TestOutputCommandHelpDefault(t *testing.T) {
	f := newFixture(t)
	clone, _ := f.root.Find("clone")

	err := f.prog.OutputCommandHelp(clone)

	assert.Equal(t, 0, errors.ExitCode(err))
	assert.Contains(t, f.stdout.String(), "git clone <url>")
}

func TestOutputCommandHelpNotCoveredByOnAll(t *testing.T) {
	f := newFixture(t)
	var calls int
	f.prog.OnAll(func(events.EventConfig) { calls++ }, 0)
	clone, _ := f.root.Find("clone")

	_ = f.prog.OutputCommandHelp(clone)
	_ = f.prog.UnresolvedArgument(clone, "extra")

	assert.Equal(t, 0, calls)
	assert.Contains(t, f.stdout.String(), "git clone <url>")
	assert.Contains(t, f.stderr.String(), `unexpected argument "extra"`)
}

func TestExitFuncCalledOnTermination(t *testing.T) {
	f := newExitFixture(t)
	f.prog.OnAllErrors(func(events.EventConfig) {}, 0)
	f.prog.On(events.OutputVersion, func(events.EventConfig) {}, 0)

	clone, _ := f.root.Find("clone")
	_ = f.prog.MissingRequiredArgument(clone, "url")
	_ = f.prog.OutputVersion()

	assert.Equal(t, []int{1, 0}, f.exits)
}

func TestExitFuncNotCalledWithoutListeners(t *testing.T) {
	f := newExitFixture(t)

	_ = f.prog.UnknownCommand(f.root, "nope")

	assert.Empty(t, f.exits)
}

func TestPayloadCarriesArgs(t *testing.T) {
	f := newFixture(t, cmdevents.WithArgs([]string{"clone", "--depth"}))
	var cfg events.EventConfig
	f.prog.On(events.OptionMissingArgument, func(c events.EventConfig) { cfg = c }, 0)

	clone, _ := f.root.Find("clone")
	_ = f.prog.OptionMissingArgument(clone, "--depth")

	assert.Equal(t, []string{"clone", "--depth"}, cfg.Args())
	assert.Equal(t, 2, cfg.ArgCount())
}

func TestMissingRequiredArgumentConvention(t *testing.T) {
	f := newFixture(t, cmdevents.WithErrorExitCode(64))
	var cfg events.EventConfig
	f.prog.On(events.MissingRequiredArgument, func(c events.EventConfig) { cfg = c }, 0)

	clone, _ := f.root.Find("clone")
	err := f.prog.MissingRequiredArgument(clone, "url")

	assert.Equal(t, 64, errors.ExitCode(err))
	assert.Equal(t, "clone,url", cfg.ErrorString())
	assert.Equal(t, 64, cfg.ExitCode())
}

func TestUnknownCommandScenario(t *testing.T) {
	f := newExitFixture(t)
	var order []string
	var texts []string
	f.prog.On(events.UnknownCommand, func(cfg events.EventConfig) {
		order = append(order, "A")
		texts = append(texts, cfg.ErrorString())
	}, 5)
	f.prog.On(events.UnknownCommand, func(cfg events.EventConfig) {
		order = append(order, "B")
		texts = append(texts, cfg.ErrorString())
	}, -5)

	err := f.prog.Raise(f.prog.NewConfig(events.UnknownCommandPayload{Name: "foo"}).WithExitCode(2))

	assert.Equal(t, []string{"B", "A"}, order)
	assert.Equal(t, []string{"foo", "foo"}, texts)
	assert.Equal(t, []int{2}, f.exits)
	assert.Equal(t, 2, errors.ExitCode(err))
}

func TestRegistrationSurface(t *testing.T) {
	f := newFixture(t)
	noop := func(events.EventConfig) {}

	f.prog.InsertBeforeAll(noop)
	assert.Len(t, f.prog.RegisteredEvents(), 6)

	f.prog.InsertAfterAll(noop)
	assert.True(t, f.prog.Overridden(events.OutputHelp))
	assert.False(t, f.prog.Overridden(events.OutputCommandHelp))

	assert.True(t, f.prog.Remove(events.OutputHelp, events.PriorityBeforeAll))
	assert.True(t, f.prog.Remove(events.OutputHelp, events.PriorityAfterAll))
	assert.True(t, f.prog.Overridden(events.OutputHelp), "emptied kinds stay registered")
}

func TestEmptiedKindStillTerminates(t *testing.T) {
	f := newExitFixture(t)
	f.prog.On(events.UnresolvedArgument, func(events.EventConfig) {}, 3)
	require.True(t, f.prog.Remove(events.UnresolvedArgument, 3))
	clone, _ := f.root.Find("clone")

	err := f.prog.UnresolvedArgument(clone, "extra")

	assert.Equal(t, 1, errors.ExitCode(err))
	assert.Equal(t, []int{1}, f.exits)
	assert.Empty(t, f.stderr.String(), "default output stays replaced")
}

type failingRenderer struct{ *render.Renderer }

func (failingRenderer) Error(io.Writer, events.EventConfig) error {
	return errors.New("broken pipe")
}

func TestRendererErrorIsReturned(t *testing.T) {
	f := newFixture(t, cmdevents.WithRenderer(failingRenderer{render.New()}))

	err := f.prog.UnknownCommand(f.root, "x")

	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "UnknownCommand", ioErr.Path)
}

func TestProgramLogsRaise(t *testing.T) {
	tl := logging.NewTestLogger(t)
	f := newFixture(t, cmdevents.WithLogger(tl.Logger))
	f.prog.On(events.UnknownCommand, func(events.EventConfig) {}, 0)

	_ = f.prog.UnknownCommand(f.root, "x")

	assert.True(t, tl.ContainsAll("raising event", "UnknownCommand", "overridden by listeners"))
}

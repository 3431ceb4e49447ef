package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cmdevents/pkg/command"
	"github.com/agentstation/cmdevents/pkg/events"
)

func testTree() *command.Command {
	root := command.New("git").Version("2.0.0").Describe("stupid content tracker")
	root.Option(command.Option{Long: "verbose", Short: "v", Usage: "be chatty"})
	root.Subcommand(command.New("clone").Describe("clone a repository")).Argument("url", true)
	root.Subcommand(command.New("log").Describe("show history")).VariadicArgument("paths", false)
	return root
}

func TestHelp(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithNoColor(true))

	require.NoError(t, r.Help(&buf, testTree()))

	out := buf.String()
	assert.Contains(t, out, "stupid content tracker")
	assert.Contains(t, out, "git <command> [flags]")
	assert.Contains(t, out, "clone a repository")
	assert.Contains(t, out, "-v, --verbose  be chatty")
}

func TestCommandHelpUsage(t *testing.T) {
	root := testTree()
	clone, _ := root.Find("clone")
	log, _ := root.Find("log")

	assert.Equal(t, "git clone <url>", usage(clone))
	assert.Equal(t, "git log [paths...]", usage(log))
}

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithNoColor(true))

	require.NoError(t, r.Version(&buf, testTree()))
	assert.Equal(t, "git 2.0.0\n", buf.String())

	buf.Reset()
	require.NoError(t, r.Version(&buf, command.New("tool")))
	assert.Equal(t, "tool (devel)\n", buf.String())
}

func TestError(t *testing.T) {
	root := testTree()
	var buf bytes.Buffer
	r := New(WithNoColor(true))

	cfg := events.NewConfig().
		WithProgram(root).
		WithMatchedCommand(root).
		WithPayload(events.UnknownCommandPayload{Name: "clon"}).
		WithInfo("clone")

	require.NoError(t, r.Error(&buf, cfg))
	assert.Contains(t, buf.String(), `✗ Error: unknown command "clon" for "git"`)
	assert.Contains(t, buf.String(), `Did you mean "clone"?`)
}

func TestMessage(t *testing.T) {
	root := testTree()
	clone, _ := root.Find("clone")

	tests := []struct {
		payload events.Payload
		want    string
	}{
		{events.UnknownOptionPayload{Option: "--nope"}, `unknown flag --nope for "git clone"`},
		{events.OptionMissingArgumentPayload{Option: "--depth"}, "flag --depth needs an argument"},
		{events.MissingRequiredArgumentPayload{Command: "clone", Argument: "url"}, `missing required argument <url> for "clone"`},
		{events.UnresolvedArgumentPayload{Argument: "extra"}, `unexpected argument "extra" for "git clone"`},
		{events.OutputVersionPayload{Version: "1"}, "version 1"},
	}
	for _, tt := range tests {
		cfg := events.NewConfig().WithProgram(root).WithMatchedCommand(clone).WithPayload(tt.payload)
		assert.Equal(t, tt.want, Message(cfg))
	}
}

func TestHintFor(t *testing.T) {
	root := testTree()

	h, ok := HintFor(events.NewConfig().WithProgram(root).WithPayload(events.UnknownOptionPayload{Option: "-x"}))
	require.True(t, ok)
	assert.Equal(t, "git --help", h.Command)

	_, ok = HintFor(events.NewConfig().WithPayload(events.OutputHelpPayload{}))
	assert.False(t, ok)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Unknown Command", Title(events.UnknownCommand))
	assert.Equal(t, "Missing Required Argument", Title(events.MissingRequiredArgument))
}

func TestEventTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EventTable(&buf))
	for _, ev := range events.All() {
		assert.Contains(t, buf.String(), ev.String())
	}
	assert.Contains(t, buf.String(), "supplement")
}

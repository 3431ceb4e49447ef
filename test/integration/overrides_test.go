package integration

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/agentstation/cmdevents"
	"github.com/agentstation/cmdevents/internal/bridge"
	"github.com/agentstation/cmdevents/pkg/constants"
	"github.com/agentstation/cmdevents/pkg/errors"
	"github.com/agentstation/cmdevents/pkg/overrides"
)

const rules = `
overrides:
  - event: before-all
    message: "[{{.Event}}]"
    stream: stdout
  - event: UnknownCommand
    message: "{{.Program}}: '{{.Name}}' is not a {{.Program}} command"
  - event: MissingRequiredArgument
    priority: -1
    message: "fatal: you must specify a {{.Argument}}"
  - event: after-all
    message: "bye"
    stream: stdout
`

func newProgram(t *testing.T) (*bridge.Bridge, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	root := &cobra.Command{Use: "git", Version: "2.43.0"}
	root.AddCommand(&cobra.Command{
		Use:         "clone",
		Annotations: map[string]string{constants.AnnotationArgs: "repository"},
		RunE:        func(*cobra.Command, []string) error { return nil },
	})

	var stdout, stderr bytes.Buffer
	b, err := bridge.New(root, cmdevents.WithOutput(&stdout, &stderr))
	if err != nil {
		t.Fatalf("bridge.New() failed: %v", err)
	}

	file, err := overrides.Parse([]byte(rules))
	if err != nil {
		t.Fatalf("overrides.Parse() failed: %v", err)
	}
	if err := file.Apply(context.Background(), b.Program(), &stdout, &stderr); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	return b, &stdout, &stderr
}

func TestUnknownCommandThroughOverrides(t *testing.T) {
	b, stdout, stderr := newProgram(t)

	err := b.Execute(context.Background(), []string{"pul"})

	if code := errors.ExitCode(err); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got, want := stderr.String(), "git: 'pul' is not a git command\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
	if got, want := stdout.String(), "[UnknownCommand]\nbye\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestMissingArgumentThroughOverrides(t *testing.T) {
	b, _, stderr := newProgram(t)

	err := b.Execute(context.Background(), []string{"clone"})

	if !errors.IsTerminated(err) {
		t.Fatalf("expected termination, got %v", err)
	}
	if got, want := stderr.String(), "fatal: you must specify a repository\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestBootstrapRulesReplaceVersion(t *testing.T) {
	b, stdout, _ := newProgram(t)

	err := b.Execute(context.Background(), []string{"--version"})

	if code := errors.ExitCode(err); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if got, want := stdout.String(), "[OutputVersion]\nbye\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestUncoveredKindKeepsDefault(t *testing.T) {
	b, stdout, stderr := newProgram(t)

	err := b.Execute(context.Background(), []string{"clone", "repo", "extra"})

	if code := errors.ExitCode(err); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte(`unexpected argument "extra"`)) {
		t.Errorf("stderr = %q, want default message", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

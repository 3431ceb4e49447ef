package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/agentstation/cmdevents/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("command", "deploy")
		assert.Equal(t, "command deploy not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("command", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestUnknownEventError(t *testing.T) {
	err := &pkgerrors.UnknownEventError{Name: "Bogus"}
	assert.Equal(t, `unknown event "Bogus"`, err.Error())
	assert.True(t, pkgerrors.IsUnknownEvent(err))
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "priority",
			Message: "must be an integer",
		}
		assert.Equal(t, "validation failed for field priority: must be an integer", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty rule"}
		assert.Equal(t, "validation failed: empty rule", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("boom")
	err := pkgerrors.NewConfigError("overrides", "cannot load", base)
	assert.Equal(t, "configuration error in overrides: cannot load", err.Error())
	assert.ErrorIs(t, err, base)

	err = pkgerrors.NewConfigError("", "cannot load", nil)
	assert.Equal(t, "configuration error: cannot load", err.Error())
}

func TestParseError(t *testing.T) {
	base := errors.New("line 3: bad indent")
	err := pkgerrors.NewParseError("yaml", "overrides.yaml", "bad indent", base)
	assert.Equal(t, "parse error in yaml file overrides.yaml: bad indent", err.Error())
	assert.ErrorIs(t, err, base)

	err = pkgerrors.NewParseError("template", "", "unexpected EOF", nil)
	assert.Equal(t, "template parse error: unexpected EOF", err.Error())
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.NewIOError("read", "/etc/x", base)
	assert.Equal(t, "IO error during read of /etc/x: permission denied", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("yaml", "x", nil))
	var pe *pkgerrors.ParseError
	require.ErrorAs(t, pkgerrors.WrapParse("yaml", "f", errors.New("bad")), &pe)
	assert.Equal(t, "f", pe.File)
}

func TestExitError(t *testing.T) {
	t.Run("message wins", func(t *testing.T) {
		err := pkgerrors.NewExitError("UnknownCommand", 2, "unknown command \"foo\"")
		assert.Equal(t, `unknown command "foo"`, err.Error())
		assert.Equal(t, 2, pkgerrors.ExitCode(err))
		assert.True(t, pkgerrors.IsTerminated(err))
		assert.True(t, pkgerrors.IsHandled(err))
	})

	t.Run("event fallback", func(t *testing.T) {
		err := &pkgerrors.ExitError{Code: 0, Event: "OutputVersion"}
		assert.Equal(t, "OutputVersion: exit status 0", err.Error())
		assert.Equal(t, 0, pkgerrors.ExitCode(err))
		assert.False(t, pkgerrors.IsHandled(err))
	})

	t.Run("bare", func(t *testing.T) {
		err := &pkgerrors.ExitError{Code: 3}
		assert.Equal(t, "exit status 3", err.Error())
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, pkgerrors.ExitCode(nil))
	assert.Equal(t, 1, pkgerrors.ExitCode(errors.New("plain")))

	err := pkgerrors.WithExitCodeIfNone(errors.New("plain"), 4)
	assert.Equal(t, 4, pkgerrors.ExitCode(err))
	assert.Equal(t, "plain", err.Error())

	// an existing code is kept
	kept := pkgerrors.WithExitCodeIfNone(err, 9)
	assert.Equal(t, 4, pkgerrors.ExitCode(kept))

	assert.NoError(t, pkgerrors.WithExitCodeIfNone(nil, 1))
}

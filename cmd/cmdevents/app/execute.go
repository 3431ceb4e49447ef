package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentstation/cmdevents"
	"github.com/agentstation/cmdevents/internal/bridge"
	"github.com/agentstation/cmdevents/internal/render"
	"github.com/agentstation/cmdevents/pkg/constants"
	"github.com/agentstation/cmdevents/pkg/errors"
	"github.com/agentstation/cmdevents/pkg/logging"
	"github.com/agentstation/cmdevents/pkg/overrides"
)

// Execute runs the cmdevents CLI with the given arguments.
// The CLI's own parse errors, help and version output are raised as events,
// so an overrides file can customize them like any other program.
func (a *App) Execute(ctx context.Context, args []string) error {
	a.applyGlobalFlags(args)
	ctx = logging.WithLogger(ctx, a.logger)

	b, err := bridge.New(a.createRootCommand(), a.programOptions()...)
	if err != nil {
		return err
	}
	a.program = b.Program()

	if path := a.config.Overrides; path != "" {
		file, err := overrides.Load(path)
		if errors.IsNotFound(err) {
			return errors.NewConfigError("overrides", "file "+path+" does not exist", err)
		}
		if err != nil {
			return err
		}
		if err := file.Apply(ctx, b.Program(), a.stdout, a.stderr); err != nil {
			return err
		}
		a.logger.Debug().Str("path", path).Int("rules", len(file.Rules)).Msg("overrides loaded")
	}

	err = b.Execute(ctx, args)
	if errors.IsTerminated(err) {
		a.logger.Debug().Int("exit_code", errors.ExitCode(err)).Msg("terminated by event")
	}
	return err
}

// applyGlobalFlags reads the global flags ahead of cobra. Events can be raised
// while cobra parses, so overrides and logging must be configured before then.
func (a *App) applyGlobalFlags(args []string) {
	fs := pflag.NewFlagSet(constants.AppName, pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	g := registerGlobalFlags(fs)

	// Malformed global flags are reported again by cobra as events.
	_ = fs.Parse(args)

	a.config.UpdateFromFlags(g.verbose, g.quiet, g.noColor, g.overrides, g.logLevel)
	logger := NewLogger(a.config)
	a.logger = &logger
}

type globalFlags struct {
	verbose   bool
	quiet     bool
	noColor   bool
	overrides string
	logLevel  string
}

func registerGlobalFlags(fs *pflag.FlagSet) *globalFlags {
	g := &globalFlags{}
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	fs.BoolVarP(&g.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	fs.BoolVar(&g.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&g.overrides, "overrides", "", "overrides file (default ./"+constants.DefaultOverridesFile+")")
	fs.StringVar(&g.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	return g
}

func (a *App) programOptions() []cmdevents.Option {
	opts := []cmdevents.Option{
		cmdevents.WithLogger(a.logger),
		cmdevents.WithOutput(a.stdout, a.stderr),
		cmdevents.WithRenderer(render.New(render.WithNoColor(a.config.NoColor))),
		cmdevents.WithErrorExitCode(a.config.ErrorExitCode),
	}
	if a.config.StrictExit {
		opts = append(opts, cmdevents.WithExitFunc(os.Exit))
	}
	return opts
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Inspect and exercise command line event overrides",
		Version: a.version,
		Long: `cmdevents raises an event for every condition a command line parser
detects: help and version requests, unknown commands and flags, missing and
surplus arguments. Listeners registered for an event replace the built-in
output; an overrides file declares such listeners without code.`,
	}

	// Registered so cobra accepts them; their values were read in applyGlobalFlags.
	registerGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		a.NewEventsCommand(),
		a.NewEmitCommand(),
		a.NewCheckCommand(),
		a.NewVersionCommand(),
	)
	return rootCmd
}

// ExitOnError terminates the process with the exit code carried by err.
// Errors that already produced output are not printed again.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	if !errors.IsHandled(err) {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
	}
	os.Exit(errors.ExitCode(err))
}

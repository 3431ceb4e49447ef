package app

import (
	"fmt"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/agentstation/cmdevents/internal/render"
	"github.com/agentstation/cmdevents/pkg/constants"
	"github.com/agentstation/cmdevents/pkg/errors"
	"github.com/agentstation/cmdevents/pkg/events"
	"github.com/agentstation/cmdevents/pkg/overrides"
)

// eventInfo is the serialized form of one row of the events listing.
type eventInfo struct {
	Event       events.Event `yaml:"event"`
	Title       string       `yaml:"title"`
	Policy      string       `yaml:"policy"`
	OnAll       bool         `yaml:"on_all"`
	OnAllErrors bool         `yaml:"on_all_errors"`
}

// NewEventsCommand lists the event taxonomy.
func (a *App) NewEventsCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:         "events",
		Short:       "List event kinds with their policy and bulk registration coverage",
		Annotations: map[string]string{constants.AnnotationArgs: ""},
		RunE: func(_ *cobra.Command, _ []string) error {
			switch format {
			case "", "table":
				return render.EventTable(a.stdout)
			case "yaml":
				infos := make([]eventInfo, 0, len(events.All()))
				for _, ev := range events.All() {
					infos = append(infos, eventInfo{
						Event:       ev,
						Title:       render.Title(ev),
						Policy:      ev.Policy().String(),
						OnAll:       ev.InCommon(),
						OnAllErrors: slices.Contains(events.Errors(), ev),
					})
				}
				data, err := yaml.Marshal(infos)
				if err != nil {
					return errors.WrapParse("yaml", "", err)
				}
				_, err = a.stdout.Write(data)
				return err
			default:
				return errors.NewValidationError("format", format, "must be table or yaml")
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table, yaml")
	return cmd
}

// NewEmitCommand raises one event on the CLI's own program, running any
// listeners from the overrides file.
func (a *App) NewEmitCommand() *cobra.Command {
	var (
		value    string
		info     string
		exitCode int
	)
	cmd := &cobra.Command{
		Use:   "emit <event>",
		Short: "Raise an event through the configured overrides",
		Long: `Raise an event as if the parser had detected it. The value becomes the
event's error string: the unknown command or flag, "command,argument" for
MissingRequiredArgument, the command name for OutputCommandHelp.`,
		Example:     `  cmdevents emit UnknownCommand --value deploy --exit-code 2`,
		Annotations: map[string]string{constants.AnnotationArgs: "event"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := events.ParseEvent(args[0])
			if err != nil {
				return err
			}
			payload := events.NewConfig().WithEvent(ev).WithErrorString(value).Payload()

			cfg := a.program.NewConfig(payload).WithInfo(info)
			if cmd.Flags().Changed("exit-code") {
				cfg = cfg.WithExitCode(exitCode)
			}
			if ev == events.OutputCommandHelp {
				if target, ok := a.program.Root().Find(value); ok {
					cfg = cfg.WithMatchedCommand(target)
				}
			}
			a.logger.Debug().Stringer("event", ev).Str("value", value).Msg("emitting event")
			return a.program.Raise(cfg)
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "error string carried by the event")
	cmd.Flags().StringVar(&info, "info", "", "auxiliary information for listeners")
	cmd.Flags().IntVar(&exitCode, "exit-code", 0, "exit code (default 0 for help and version, 1 for errors)")
	return cmd
}

// NewCheckCommand validates an overrides file.
func (a *App) NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "check <file>",
		Short:       "Validate an overrides file",
		Annotations: map[string]string{constants.AnnotationArgs: "file"},
		RunE: func(_ *cobra.Command, args []string) error {
			file, err := overrides.Load(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(file.Rules))
			for _, r := range file.Rules {
				stream := r.Stream
				if stream == "" {
					stream = "auto"
				}
				rows = append(rows, []string{r.Event, fmt.Sprint(r.Priority), stream, r.Message})
			}
			if err := render.Table(a.stdout, render.Data{
				Headers: []string{"Event", "Priority", "Stream", "Message"},
				Rows:    rows,
			}); err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "%s %d rules valid\n", render.SymbolSuccess, len(file.Rules))
			return err
		},
	}
}

// NewVersionCommand raises OutputVersion. With --long it also prints build
// details, unless listeners replaced the version output.
func (a *App) NewVersionCommand() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Annotations: map[string]string{constants.AnnotationArgs: ""},
		RunE: func(_ *cobra.Command, _ []string) error {
			err := a.program.OutputVersion()
			if !long || a.program.Overridden(events.OutputVersion) {
				return err
			}
			if _, werr := fmt.Fprintf(a.stdout, "  commit:   %s\n  built:    %s\n  built by: %s\n",
				a.commit, a.date, a.builtBy); werr != nil {
				return errors.WrapIO("write", "version", werr)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&long, "long", false, "include commit and build details")
	return cmd
}

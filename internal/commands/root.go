package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/simonhull/firebird-suite/wren/internal/output"
)

// RootCmd creates and returns the root command for the wren CLI
func RootCmd() *cobra.Command {
	var verbose bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "wren",
		Short: "Generate per-iteration properties files for looped model runs",
		Long: `Wren writes one properties file per iteration of a nested model loop.

A template holds every key with its default value. Values may carry tokens
that wren substitutes for each (outer, inner) iteration:

  BASEPATH    the run's base directory
  LOOP_PAIR   outer<N>/inner<M>
  OUTER       outer<N>
  #           the inner index

Learn more: https://github.com/simonhull/firebird-suite`,
		Version:       wren.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output.SetVerbose(verbose)
			_, err := commandLogger(cmd, "")
			return err
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error or silent")

	return cmd
}

// NewApp returns the root command with every subcommand attached
func NewApp() *cobra.Command {
	root := RootCmd()
	root.AddCommand(CreateCmd())
	root.AddCommand(RunCmd())
	root.AddCommand(InspectCmd())
	root.AddCommand(InitCmd())
	root.AddCommand(VersionCmd())
	return root
}

// Execute runs the CLI. Interrupts cancel running hooks.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := NewApp().ExecuteContext(ctx)
	report(err)
	return err
}

// commandLogger builds the logger for a command and installs it as the
// default. An explicit --log-level beats the level from wren.yml.
func commandLogger(cmd *cobra.Command, configLevel string) (logger.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	if !cmd.Flags().Changed("log-level") && configLevel != "" {
		name = configLevel
	}

	level, err := logger.ParseLevel(name)
	if err != nil {
		return nil, fail(err)
	}

	log := logger.NewLogger(level, cmd.ErrOrStderr())
	logger.SetDefault(log)
	return log, nil
}

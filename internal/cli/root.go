// Package cli wires configuration, storage and services into the
// angler-terminal command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/angler-terminal/internal/config"
	"github.com/ngmaloney/angler-terminal/internal/logging"
)

// App carries state shared by every command
type App struct {
	configPath string
	debug      bool

	settings *config.Settings
	logger   *slog.Logger
	closeLog func() error
	rt       *Runtime

	out io.Writer
}

// Execute runs the root command with the process arguments
func Execute() error {
	return NewRootCommand(os.Stdout).ExecuteContext(context.Background())
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the terminal UI.
func NewRootCommand(out io.Writer) *cobra.Command {
	app := &App{out: out}

	rootCmd := &cobra.Command{
		Use:           "angler-terminal [location]",
		Short:         "Fishing conditions for Mauritius",
		Long:          "Moon, tide, solunar, weather and sea conditions for Mauritius fishing spots, plus a personal catch logbook.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTUI(cmd.Context(), args)
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default: ./config.yaml or ~/.config/angler-terminal/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&app.debug, "debug", false, "enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd == rootCmd)
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.Close()
	}

	rootCmd.AddCommand(
		newConditionsCmd(app),
		newMoonCmd(app),
		newTideCmd(app),
		newSolunarCmd(app),
		newLocationsCmd(app),
		newLogCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}

// setup loads settings and builds the logger. The TUI never logs to the terminal.
func (a *App) setup(tui bool) error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.debug {
		settings.Debug = true
	}
	a.settings = settings

	newLogger := logging.New
	if tui {
		newLogger = logging.ForTUI
	}
	logger, closeLog, err := newLogger(settings.Log, settings.Debug)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	a.logger = logger
	a.closeLog = closeLog
	slog.SetDefault(logger)
	return nil
}

// runtime opens the database and services on first use
func (a *App) runtime() (*Runtime, error) {
	if a.rt != nil {
		return a.rt, nil
	}
	rt, err := NewRuntime(a.settings, a.logger)
	if err != nil {
		return nil, err
	}
	a.rt = rt
	return rt, nil
}

// Close releases the runtime and log writer
func (a *App) Close() error {
	var firstErr error
	if a.rt != nil {
		firstErr = a.rt.Close()
		a.rt = nil
	}
	if a.closeLog != nil {
		if err := a.closeLog(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.closeLog = nil
	}
	return firstErr
}

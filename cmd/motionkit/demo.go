package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/animation"
	"github.com/alexisbeaulieu97/motionkit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/motionkit/internal/tui"
)

type demoOptions struct {
	frozen    bool
	ephemeral bool
}

func newDemoCmd(flags *rootFlags) *cobra.Command {
	opts := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Launch the interactive motion preview",
		Long:  `Launch the terminal preview: animated accordions and a slider driven by the resolved tokens, plus a configurator to edit presets, values and aliases.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, flags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.frozen, "frozen", false, "Never release the toggle lock (timers only advance manually)")
	cmd.Flags().BoolVar(&opts.ephemeral, "ephemeral", false, "Keep alias edits in memory only")

	return cmd
}

func runDemo(cmd *cobra.Command, flags *rootFlags, opts *demoOptions) error {
	if !isTerminal(cmd.OutOrStdout()) {
		return newCommandError("start demo", "checking the terminal", errors.New("stdout is not a terminal"), "Run 'motionkit resolve' or 'motionkit css' for non-interactive output.")
	}

	settings, err := flags.settings(cmd)
	if err != nil {
		return err
	}
	primary, err := flags.logger(cmd, settings)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; log lines are held back and replayed on exit.
	buffer := logging.NewEventBuffer(0)
	defer buffer.Flush(primary)
	buffered, err := logging.NewBufferedLogger(buffer, settings.Log.Level)
	if err != nil {
		return newCommandError("start demo", "configuring logging", err, "Use --log-level debug, info, warn or error.")
	}

	app, err := newApp(commandContext(cmd), settings, buffered, appOptions{ephemeral: opts.ephemeral})
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, logger := app.CommandContext(cmd, "command.demo")
	logger.Info(ctx, "launching demo", "warnings", len(app.Resolution.Warnings))

	options := tui.Options{
		Names:  app.Names,
		Values: app.Values,
		Sheet:  app.Sheet,
		Logs:   buffer,
		Curve:  settings.Animation.Curve(),
		FPS:    settings.Animation.FPS,
	}
	if opts.frozen {
		options.Clock = animation.NewManualClock()
	}

	model, err := tui.NewModel(ctx, options)
	if err != nil {
		logger.Error(ctx, "demo construction failed", "error", err)
		return newCommandError("start demo", "building widgets", err, "This is a bug; please report it.")
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		logger.Error(ctx, "demo execution failed", "error", err)
		return fmt.Errorf("failed to run demo: %w", err)
	}

	logger.Info(ctx, "demo closed")
	return nil
}

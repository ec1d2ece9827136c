package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/motionkit/internal/config"
	"github.com/alexisbeaulieu97/motionkit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

type rootFlags struct {
	configPath           string
	logLevel             string
	logFormat            string
	storePath            string
	referencePath        string
	definitionsPath      string
	maxDampingMultiplier float64
	fps                  int
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "motionkit",
		Short:         "motionkit resolves motion design tokens and previews them in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runDemo(cmd, flags, &demoOptions{})
			}
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Settings file (default ./"+config.SettingsFileName+" when present)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text, json or zerolog")
	pf.StringVar(&flags.storePath, "store", "", "Alias store file")
	pf.StringVar(&flags.referencePath, "reference", "", "Reference token document (default embedded)")
	pf.StringVar(&flags.definitionsPath, "definitions", "", "Token definitions document (default embedded)")
	pf.Float64Var(&flags.maxDampingMultiplier, "max-damping-multiplier", 0, "Damping multiplier applied at the maximum content height")
	pf.IntVar(&flags.fps, "fps", 0, "Animation frame rate")

	cmd.AddCommand(newDemoCmd(flags))
	cmd.AddCommand(newResolveCmd(flags))
	cmd.AddCommand(newCSSCmd(flags))
	cmd.AddCommand(newDampingCmd(flags))
	cmd.AddCommand(newAliasCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// settings loads the settings file and applies the flags that were set
// explicitly on top of it.
func (f *rootFlags) settings(cmd *cobra.Command) (config.Settings, error) {
	path, required := f.configPath, true
	if path == "" {
		path, required = config.SettingsFileName, false
	}
	settings, err := config.LoadSettings(path, required)
	if err != nil {
		return settings, newCommandError("load settings", path, err, "Fix the settings file or pass --config with a valid path.")
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		settings.Log.Level = f.logLevel
	}
	if changed("log-format") {
		settings.Log.Format = f.logFormat
	}
	if changed("store") {
		settings.Store.Path = f.storePath
	}
	if changed("reference") {
		settings.Tokens.Reference = f.referencePath
	}
	if changed("definitions") {
		settings.Tokens.Definitions = f.definitionsPath
	}
	if changed("max-damping-multiplier") {
		settings.Animation.MaxDampingMultiplier = f.maxDampingMultiplier
	}
	if changed("fps") {
		settings.Animation.FPS = f.fps
	}

	if err := config.ValidateSettings(settings); err != nil {
		return settings, newCommandError("validate settings", path, err, "Check the flag values against 'motionkit --help'.")
	}
	return settings, nil
}

// logger builds the primary logger. Logs go to stderr so command output
// stays machine readable.
func (f *rootFlags) logger(cmd *cobra.Command, settings config.Settings) (ports.Logger, error) {
	logger, err := logging.NewForFormat(logging.Format(settings.Log.Format), logging.Options{
		Writer:    cmd.ErrOrStderr(),
		Level:     settings.Log.Level,
		Layer:     "cli",
		Component: "motionkit",
	})
	if err != nil {
		return nil, newCommandError("create logger", settings.Log.Format, err, "Use --log-format text, json or zerolog.")
	}
	return logger, nil
}

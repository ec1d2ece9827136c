package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
)

type resolveOptions struct {
	output  string
	presets []string
}

type resolveWarning struct {
	Token  string `json:"token" yaml:"token"`
	Raw    string `json:"raw" yaml:"raw"`
	Reason string `json:"reason" yaml:"reason"`
}

type resolveReport struct {
	Tokens   map[string]string `json:"tokens" yaml:"tokens"`
	Warnings []resolveWarning  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newResolveCmd(flags *rootFlags) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved token set",
		Long:  `Resolve the token definitions against the reference tables and print every token with its concrete value. Unresolved references are listed as warnings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "yaml", "Output format: yaml or json")
	cmd.Flags().StringSliceVar(&opts.presets, "preset", nil, "Apply a spring preset before printing, as TARGET=preset (repeatable)")

	return cmd
}

func runResolve(cmd *cobra.Command, flags *rootFlags, opts *resolveOptions) error {
	if opts.output != "yaml" && opts.output != "json" {
		return newCommandError("resolve tokens", "validating output format", fmt.Errorf("unknown format %q", opts.output), "Use --output yaml or --output json.")
	}

	app, err := loadApp(cmd, flags, appOptions{ephemeral: true})
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, logger := app.CommandContext(cmd, "command.resolve")
	if err := applyPresets(cmd, app, opts.presets); err != nil {
		return err
	}

	report := resolveReport{Tokens: map[string]string{}}
	snapshot := app.Tokens.Snapshot()
	for _, name := range snapshot.Names() {
		report.Tokens[string(name)] = snapshot.Text(name)
	}
	for _, w := range app.Resolution.Warnings {
		report.Warnings = append(report.Warnings, resolveWarning{Token: string(w.Name), Raw: w.Raw, Reason: w.Reason})
	}
	logger.Debug(ctx, "tokens reported", "tokens", len(report.Tokens), "warnings", len(report.Warnings))

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

// applyPresets applies TARGET=preset pairs in order.
func applyPresets(cmd *cobra.Command, app *AppContext, pairs []string) error {
	ctx, _ := app.CommandContext(cmd, "command.preset")
	for _, pair := range pairs {
		target, preset, ok := strings.Cut(pair, "=")
		if !ok || target == "" || preset == "" {
			return newCommandError("apply preset", pair, errors.New("expected TARGET=preset"), "Pass --preset CONTENT=soft.")
		}
		if err := app.Tokens.ApplyPreset(ctx, tokens.Target(target), preset); err != nil {
			return newCommandError("apply preset", pair, err, fmt.Sprintf("Targets are ARROW and CONTENT; presets are %v or %s.", app.Tokens.Reference().PresetNames(), tokens.Custom))
		}
	}
	return nil
}

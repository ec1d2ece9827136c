package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type cssOptions struct {
	presets []string
}

func newCSSCmd(flags *rootFlags) *cobra.Command {
	opts := &cssOptions{}

	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the token style variables as a CSS :root block",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, flags, appOptions{ephemeral: true})
			if err != nil {
				return err
			}
			defer app.Close()

			if err := applyPresets(cmd, app, opts.presets); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), app.Sheet.Render())
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&opts.presets, "preset", nil, "Apply a spring preset first, as TARGET=preset (repeatable)")

	return cmd
}

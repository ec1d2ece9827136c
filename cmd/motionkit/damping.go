package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/animation"
)

var defaultDampingHeights = []float64{0, 100, 300, 500, 800, 1200}

func newDampingCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "damping [height...]",
		Short: "Show the content spring damping for measured heights",
		Long:  `Show how the content spring damping scales with the measured content height, using the configured damping curve and the resolved content damping.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			heights := defaultDampingHeights
			if len(args) > 0 {
				heights = make([]float64, 0, len(args))
				for _, arg := range args {
					h, err := strconv.ParseFloat(arg, 64)
					if err != nil || h < 0 {
						return newCommandError("compute damping", fmt.Sprintf("parsing height %q", arg), fmt.Errorf("height must be a non-negative number"), "Pass heights in pixels, e.g. 'motionkit damping 120 640'.")
					}
					heights = append(heights, h)
				}
			}

			app, err := loadApp(cmd, flags, appOptions{ephemeral: true})
			if err != nil {
				return err
			}
			defer app.Close()

			curve := app.Settings.Animation.Curve()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HEIGHT\tSTIFFNESS\tDAMPING\tRATIO")
			for _, h := range heights {
				spring := animation.ContentAnimation(app.Tokens, h, curve).Height
				fmt.Fprintf(w, "%g\t%g\t%.2f\t%.3f\n", h, spring.Stiffness, spring.Damping, spring.DampingRatio())
			}
			return w.Flush()
		},
	}

	return cmd
}

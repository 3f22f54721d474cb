package commands

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/timelined/pkg/runner/timeline"
	"tableflip.dev/timelined/pkg/runner/ui"
)

func addTimeline(topLevel *cobra.Command) {
	width := 0

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the period timeline for last, this and next year.",
		Example: `
timelined timeline
timelined timeline --width 120
timelined timeline --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := openEnv(ctx, false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			if width <= 0 {
				width = columns()
			}
			s := timeline.Timeline{
				UnitWidth: e.Config.TimelineUnit,
				Width:     width,
				JSON:      output.JSON,
				Service:   e.Service,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0,
		"Number of columns to draw. Defaults to $COLUMNS or 80.")

	topLevel.AddCommand(cmd)
}

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive timeline.",
		Long: `Open the interactive timeline.

Drag with the mouse or use the arrow keys to move along the timeline, click a
period or press enter to view its schedule.`,
		Example: `
timelined ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runUI(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(_ *cobra.Command) error {
	ctx := context.Background()
	e, err := openEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	s := ui.UI{
		UnitWidth: e.Config.TimelineUnit,
		Service:   e.Service,
		Log:       e.Log,
	}
	return s.Do(ctx)
}

func columns() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 80
}

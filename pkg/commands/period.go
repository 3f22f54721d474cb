package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/timelined/pkg/commands/options"
	"tableflip.dev/timelined/pkg/runner/add"
	"tableflip.dev/timelined/pkg/runner/get"
	"tableflip.dev/timelined/pkg/runner/remove"
)

func addNew(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create the period for the current month.",
		Long: `Create the period for the current month.

Only one period per month is allowed; creating a second one fails and names
the period already there.`,
		Example: `
timelined new Summer Training
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := openEnv(ctx, false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			s := add.Add{
				Name:    strings.Join(args, " "),
				JSON:    output.JSON,
				Service: e.Service,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all periods.",
		Example: `
timelined list
timelined ls --show-id
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
			s := get.Get{
				All:     true,
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Service: e.Service,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show [period]",
		Short: "Show a period's weekly schedule.",
		Long: `Show a period's weekly schedule, grouped by day and sorted by start time.

The period can be given by id, id prefix, name or month (YYYY-MM). Without an
argument the current month's period is shown.`,
		Example: `
timelined show
timelined show 2025-06
timelined show "Summer Training" --show-id
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePeriods,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := openEnv(ctx, false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			s := get.Get{
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Service: e.Service,
			}
			if len(args) > 0 {
				s.Period = args[0]
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <period>",
		Aliases: []string{"rm"},
		Short:   "Delete a period and its schedule.",
		Example: `
timelined delete 2025-06
timelined rm "Summer Training"
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePeriods,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := openEnv(ctx, false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			s := remove.Remove{
				Period:  args[0],
				Service: e.Service,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

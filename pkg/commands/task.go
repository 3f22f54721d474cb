package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/timelined/pkg/commands/options"
	"tableflip.dev/timelined/pkg/runner/task"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add or remove tasks in a period's weekly schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(parent *cobra.Command) {
	po := &options.PeriodOptions{}
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a weekly task.",
		Example: `
timelined task add Gym --start 07:30 --end 08:30 --day tue
timelined task add "Team sync" --start 9:00 --end 9:30 --period 2025-06
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := to.Input(strings.Join(args, " "))
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := openEnv(ctx, false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			s := task.Add{
				Period:  po.Period,
				Input:   in,
				JSON:    output.JSON,
				Service: e.Service,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddPeriodArg(cmd, po)
	_ = cmd.RegisterFlagCompletionFunc("period", completePeriods)
	options.AddTaskArgs(cmd, to)

	parent.AddCommand(cmd)
}

func addTaskRemove(parent *cobra.Command) {
	po := &options.PeriodOptions{}

	cmd := &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Remove a task by id.",
		Long: `Remove a task by id.

Task ids are shown by "timelined show --show-id".`,
		Example: `
timelined task rm 0b5e1c2a-7d4f-4c7e-9d1e-3f0a6b2c8e11
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := openEnv(ctx, false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			s := task.Remove{
				Period:  po.Period,
				TaskID:  args[0],
				Service: e.Service,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddPeriodArg(cmd, po)
	_ = cmd.RegisterFlagCompletionFunc("period", completePeriods)

	parent.AddCommand(cmd)
}

package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/timelined/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	logOpts = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "timelined",
		Short: base.Wrap80("Plan one period per month and its weekly schedule on a timeline."),
		Long: base.Wrap80("timelined keeps a named period for each calendar month, each with a " +
			"weekly recurring schedule of tasks, and lays the periods out on a timeline " +
			"covering last year, this year and next year. Run without a command in a " +
			"terminal to open the interactive timeline."),
		// main reports errors once; cobra would print them a second time.
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive() {
				return cmd.Help()
			}
			return runUI(cmd)
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddLogArgs(cmd, logOpts)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addNew(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addTask(topLevel)
	addDelete(topLevel)
	addTimeline(topLevel)
	addUI(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

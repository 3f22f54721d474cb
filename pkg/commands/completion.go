package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(timelined completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(timelined completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// completePeriods offers stored period months and names. It opens storage
// without logging so nothing leaks into the shell.
func completePeriods(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := store.Open(nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc := app.Open(context.Background(), p)
	return periodCompletions(svc.Periods(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func periodCompletions(periods []*period.Period, toComplete string) []string {
	prefix := strings.ToLower(toComplete)
	out := make([]string, 0, len(periods)*2)
	for _, p := range periods {
		for _, c := range []string{p.Key().String(), p.Name} {
			if strings.HasPrefix(strings.ToLower(c), prefix) {
				out = append(out, c)
			}
		}
	}
	return out
}

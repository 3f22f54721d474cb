package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/timelined/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where periods are stored.",
		Example: `
timelined info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := openEnv(ctx, false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			s := info.Info{
				Config:  e.Config,
				Service: e.Service,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

package options

import (
	"github.com/spf13/cobra"
)

// PeriodOptions selects a period by id, id prefix, name or YYYY-MM.
type PeriodOptions struct {
	Period string
}

// AddPeriodArg registers --period. Empty means the current month's period.
func AddPeriodArg(cmd *cobra.Command, o *PeriodOptions) {
	cmd.Flags().StringVarP(&o.Period, "period", "p", "",
		`Period to use: id, name or month, example: --period="2025-06". Defaults to the current month.`)
}

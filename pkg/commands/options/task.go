package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/timelined/pkg/period"
)

// TaskOptions holds the fields of a new task.
type TaskOptions struct {
	Start string
	End   string
	Day   string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Start time, 24-hour clock, example: --start="09:00".`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`End time, 24-hour clock, example: --end="17:30".`)
	cmd.Flags().StringVar(&o.Day, "day", period.WeekdayName(period.DefaultDay),
		`Day of the week, a name like "tue" or a number 0-6 where 0 is Sunday.`)
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

// Input converts the flags into a validated task input.
func (o *TaskOptions) Input(name string) (period.TaskInput, error) {
	day, ok := period.ParseWeekday(o.Day)
	if !ok {
		return period.TaskInput{}, fmt.Errorf("invalid day %q", o.Day)
	}
	in := period.TaskInput{Name: name, StartTime: o.Start, EndTime: o.End, DayOfWeek: day}
	if _, ok := in.Task(""); !ok {
		return period.TaskInput{}, fmt.Errorf("invalid task: need a name and HH:MM start and end times")
	}
	return in, nil
}

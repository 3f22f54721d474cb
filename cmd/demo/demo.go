package main

import (
	"context"
	"time"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/printers"
	"tableflip.dev/timelined/pkg/store"
	"tableflip.dev/timelined/pkg/timeline"
)

// Prints a sample timeline from an in-memory store; nothing is written to disk.
func main() {
	ctx := context.Background()
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, now.Location())
	clock := now

	svc := app.Open(ctx, store.NewMemory(), app.WithClock(func() time.Time { return clock }))

	demo := []struct {
		offset int
		name   string
		tasks  []period.TaskInput
	}{
		{-2, "Spring cleaning", []period.TaskInput{
			{Name: "Garage", StartTime: "10:00", EndTime: "12:00", DayOfWeek: 6},
		}},
		{0, "Marathon block", []period.TaskInput{
			{Name: "Intervals", StartTime: "06:30", EndTime: "07:30", DayOfWeek: 2},
			{Name: "Long run", StartTime: "07:00", EndTime: "09:30", DayOfWeek: 0},
			{Name: "Easy run", StartTime: "06:30", EndTime: "07:15", DayOfWeek: 4},
		}},
		{3, "Exam prep", []period.TaskInput{
			{Name: "Study group", StartTime: "18:00", EndTime: "20:00", DayOfWeek: 3},
		}},
	}

	for _, d := range demo {
		clock = first.AddDate(0, d.offset, 0)
		p, err := svc.CreatePeriod(ctx, d.name)
		if err != nil {
			panic(err)
		}
		for _, in := range d.tasks {
			if _, _, err := svc.AddTask(ctx, p.ID, in); err != nil {
				panic(err)
			}
		}
	}
	clock = now

	pp := printers.PrettyPrint{}
	pp.Periods(svc.Periods()...)
	if p, ok := svc.Current(); ok {
		pp.Schedule(p)
	}
	pp.Timeline(timeline.Engine{UnitWidth: 8, Sensitivity: timeline.DefaultSensitivity}, svc.Periods(), now, 96)
}

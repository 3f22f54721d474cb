// Package task adds and removes tasks from a period's weekly schedule.
package task

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/printers"
)

// Add appends one task to a period's schedule.
type Add struct {
	Period  string
	Input   period.TaskInput
	JSON    bool
	Service *app.Service

	Out io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add task, no service")
	}
	p, err := n.Service.Resolve(n.Period)
	if err != nil {
		return err
	}

	t, ok, err := n.Service.AddTask(ctx, p.ID, n.Input)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("invalid task %q", n.Input.Name)
	}

	if n.JSON {
		return printers.JSON(n.Out, t)
	}
	return show(n.Service, p.ID, n.Out)
}

// Remove deletes one task from a period's schedule.
type Remove struct {
	Period  string
	TaskID  string
	Service *app.Service

	Out io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove task, no service")
	}
	p, err := n.Service.Resolve(n.Period)
	if err != nil {
		return err
	}
	if _, ok := p.Task(n.TaskID); !ok {
		return fmt.Errorf("task %q not found in %q", n.TaskID, p.Name)
	}
	if err := n.Service.RemoveTask(ctx, p.ID, n.TaskID); err != nil {
		return err
	}
	return show(n.Service, p.ID, n.Out)
}

func show(svc *app.Service, id string, out io.Writer) error {
	p, ok := svc.Period(id)
	if !ok {
		return nil
	}
	pp := printers.PrettyPrint{ShowID: true, Out: out}
	pp.Schedule(p)
	return nil
}

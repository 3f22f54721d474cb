// Package remove deletes periods.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/timelined/pkg/app"
)

// Remove deletes a period and, with it, its schedule.
type Remove struct {
	Period  string
	Service *app.Service

	Out io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	p, err := n.Service.Find(n.Period)
	if err != nil {
		return err
	}
	if err := n.Service.DeletePeriod(ctx, p.ID); err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "Deleted %s (%s) and %d tasks.\n", p.Name, p.MonthLabel(), len(p.Schedule))
	return nil
}

package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/printers"
)

// Get prints either every period or one period's schedule.
type Get struct {
	// All lists every period instead of showing one schedule.
	All bool
	// Period is a reference understood by app.Service.Resolve.
	Period  string
	ShowID  bool
	JSON    bool
	Service *app.Service

	Out io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}

	if n.All {
		all := n.Service.Periods()
		if n.JSON {
			return printers.JSON(n.Out, all)
		}
		pp.Periods(all...)
		return nil
	}

	p, err := n.Service.Resolve(n.Period)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, p)
	}
	pp.Schedule(p)
	return nil
}

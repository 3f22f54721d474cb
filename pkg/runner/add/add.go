package add

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/printers"
)

// Add creates the period for the current month.
type Add struct {
	Name    string
	JSON    bool
	Service *app.Service

	Out io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	p, err := n.Service.CreatePeriod(ctx, n.Name)
	var dup *app.DuplicateMonthError
	if errors.As(err, &dup) && !n.JSON {
		pp := printers.PrettyPrint{Out: n.Out}
		pp.DuplicateMonth(dup.Error())
		return fmt.Errorf("%w: %w", printers.ErrReported, err)
	}
	if err != nil {
		return err
	}

	if n.JSON {
		return printers.JSON(n.Out, p)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Schedule(p)
	return nil
}

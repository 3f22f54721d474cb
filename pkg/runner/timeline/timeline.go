// Package timeline prints the period strip for the previous, current and next
// year.
package timeline

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/printers"
	tl "tableflip.dev/timelined/pkg/timeline"
)

// Timeline renders the strip centered on the current month.
type Timeline struct {
	// UnitWidth is the number of columns per month.
	UnitWidth int
	// Width is the number of columns available.
	Width   int
	JSON    bool
	Service *app.Service

	Out io.Writer
}

type markerJSON struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	YearIndex     int    `json:"yearIndex"`
	MonthPosition int    `json:"monthPosition"`
	Position      int    `json:"position"`
}

func (n *Timeline) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show timeline, no service")
	}

	now := n.Service.Now()
	periods := n.Service.Periods()

	if n.JSON {
		// Pixel geometry, so positions match the graphical layout.
		e := tl.Default()
		out := []markerJSON{}
		for _, m := range e.Layout(periods, now) {
			out = append(out, markerJSON{
				ID:            m.Period.ID,
				Name:          m.Period.Name,
				Month:         m.Period.Month,
				Year:          m.Period.Year,
				YearIndex:     m.YearIndex,
				MonthPosition: m.MonthPosition,
				Position:      m.Position,
			})
		}
		return printers.JSON(n.Out, out)
	}

	unit := n.UnitWidth
	if unit <= 0 {
		unit = 10
	}
	width := n.Width
	if width <= 0 {
		width = 80
	}
	e := tl.Engine{UnitWidth: unit, Sensitivity: tl.DefaultSensitivity}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Timeline(e, periods, now, width)
	return nil
}

package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/timeline"
)

// Strip is a plain text rendering of the timeline, one string per row.
type Strip struct {
	Years   string
	Months  string
	Ticks   string
	Markers string
}

// RenderStrip lays the 3-year strip out with e, one column per unit, and cuts
// the [scroll, scroll+viewport) window out of it.
func RenderStrip(e timeline.Engine, periods []*period.Period, now time.Time, scroll, viewport int) Strip {
	width := e.Width()
	years := blank(width)
	months := blank(width)
	ticks := blank(width)
	marks := blank(width)

	for _, s := range e.Slots(now) {
		put(years, s.Start, s.YearLabel, e.UnitWidth)
		put(months, s.Start, s.Label, e.UnitWidth)
		put(ticks, s.Start, strings.Repeat("─", e.UnitWidth), e.UnitWidth)
		if s.Current {
			put(ticks, s.Start+e.UnitWidth/2, "┃", 1)
		} else {
			put(ticks, s.Start, "┬", 1)
		}
	}
	for _, m := range e.Layout(periods, now) {
		start := m.MonthPosition * e.UnitWidth
		put(marks, m.Position, "●", 1)
		// Label fills the rest of the slot to the right of the dot.
		room := e.UnitWidth - (m.Position - start) - 1
		if room < 1 {
			continue
		}
		label := truncate.StringWithTail(m.Period.Name, uint(room), "…")
		put(marks, m.Position+1, label, room)
	}

	scroll = e.ClampScroll(scroll, viewport)
	return Strip{
		Years:   cut(years, scroll, viewport),
		Months:  cut(months, scroll, viewport),
		Ticks:   cut(ticks, scroll, viewport),
		Markers: cut(marks, scroll, viewport),
	}
}

// Timeline prints the strip centered on the current month.
func (pp *PrettyPrint) Timeline(e timeline.Engine, periods []*period.Period, now time.Time, viewport int) {
	scroll := 0
	if m, ok := e.Place(&period.Period{Month: int(now.Month()) - 1, Year: now.Year()}, now); ok {
		scroll = e.ScrollTo(m.Position, viewport)
	}
	s := RenderStrip(e, periods, now, scroll, viewport)

	_, _ = color.New(color.Bold).Fprintln(pp.out(), s.Years)
	_, _ = color.New(color.Faint).Fprintln(pp.out(), s.Months)
	_, _ = fmt.Fprintln(pp.out(), s.Ticks)
	_, _ = color.New(color.FgHiCyan).Fprintln(pp.out(), s.Markers)
	pp.NewLine()
	pp.Faint("Use `timelined show <month|name>` to view a schedule.")
}

func blank(n int) []rune {
	r := make([]rune, n)
	for i := range r {
		r[i] = ' '
	}
	return r
}

// put writes s at offset, at most limit runes, never past the row end.
func put(row []rune, offset int, s string, limit int) {
	i := 0
	for _, c := range s {
		if i >= limit || offset+i >= len(row) {
			return
		}
		if offset+i >= 0 {
			row[offset+i] = c
		}
		i++
	}
}

func cut(row []rune, scroll, viewport int) string {
	end := scroll + viewport
	if end > len(row) {
		end = len(row)
	}
	if scroll >= end {
		return ""
	}
	return strings.TrimRight(string(row[scroll:end]), " ")
}

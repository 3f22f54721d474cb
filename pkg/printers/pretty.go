// Package printers renders periods and schedules for the command line.
package printers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/timelined/pkg/period"
)

// ErrReported marks an error whose message has already been printed for the
// user, so callers only need to set the exit status.
var ErrReported = errors.New("printers: error already reported")

// PrettyPrint writes colored, human oriented output.
type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = c.Fprintln(pp.out(), "")
}

// Faint prints a dimmed italic line, used for placeholders and hints.
func (pp *PrettyPrint) Faint(msg string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintln(pp.out(), msg)
}

// Periods prints one row per period in list order.
func (pp *PrettyPrint) Periods(periods ...*period.Period) {
	pp.TitleWithCount("Periods", len(periods), "period")
	if len(periods) == 0 {
		pp.Faint(" none")
		pp.NewLine()
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Month"), bold.Sprint("Name"), bold.Sprint("Tasks"), bold.Sprint("Created")}
	if pp.ShowID {
		header = append(header, bold.Sprint("ID"))
	}
	tbl.AddRow(header...)
	for _, p := range periods {
		row := []interface{}{p.Key().String(), p.Name, len(p.Schedule), p.CreatedLabel()}
		if pp.ShowID {
			row = append(row, y.Sprint(p.ID))
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Schedule prints p's tasks grouped by weekday, earliest first.
func (pp *PrettyPrint) Schedule(p *period.Period) {
	pp.Title(fmt.Sprintf("%s (%s)", p.Name, p.MonthLabel()))
	pp.Faint("Created in " + p.CreatedLabel())
	if pp.ShowID {
		pp.Faint(p.ID)
	}
	pp.NewLine()

	groups := period.GroupByDay(p.Schedule)
	if len(groups) == 0 {
		pp.Faint("No tasks scheduled yet")
		pp.NewLine()
		return
	}

	day := color.New(color.Bold, color.FgCyan)
	span := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, g := range groups {
		_, _ = day.Fprintln(pp.out(), g.Name())
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, t := range g.Tasks {
			row := []interface{}{"", span.Sprint(t.FormatSpan()), t.Name}
			if pp.ShowID {
				row = append(row, y.Sprint(t.ID))
			}
			tbl.AddRow(row...)
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
	}
	pp.NewLine()
}

// DuplicateMonth prints the blocking notice for a rejected creation.
func (pp *PrettyPrint) DuplicateMonth(msg string) {
	w := color.New(color.FgHiRed, color.Bold)
	_, _ = w.Fprintln(pp.out(), strings.TrimSpace(msg))
}

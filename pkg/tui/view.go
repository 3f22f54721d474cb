package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/timelined/pkg/period"
)

const (
	instructions  = "Drag to navigate the timeline • Click on periods to view schedules"
	emptySchedule = "No tasks scheduled yet"
)

// cell is one column of a strip row before styling; style indexes the styles
// slice built by stripRows.
type cell struct {
	r     rune
	style int
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Header.Title.Render("timelined"))
	b.WriteString("  ")
	b.WriteString(m.theme.Header.Hint.Render(fmt.Sprintf("%d periods", len(m.periods))))
	b.WriteString("\n\n")

	for _, row := range m.stripRows() {
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.mode {
	case modeSchedule, modeAddTask:
		if p, ok := m.selected(); ok {
			b.WriteString(m.scheduleView(p))
			b.WriteString("\n")
		}
	case modeNewPeriod:
		b.WriteString(m.newPeriodView())
		b.WriteString("\n")
	case modeNotice:
		b.WriteString(m.modal("Period exists", m.notice, "Press any key to continue."))
		b.WriteString("\n")
	case modeConfirmDelete:
		if m.pending != nil {
			body := fmt.Sprintf("Delete %q (%s) and its %d tasks?", m.pending.Name, m.pending.MonthLabel(), len(m.pending.Schedule))
			b.WriteString(m.modal("Delete period", body, "y to delete, n to keep."))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.footer())
	return b.String()
}

// stripRows renders the year, month, tick and marker rows for the visible
// window of the strip.
func (m *Model) stripRows() []string {
	th := m.theme.Strip
	const (
		styleTick = iota
		styleYear
		styleMonth
		styleCurrent
		styleCursor
		styleNow
	)
	styles := []lipgloss.Style{th.Tick, th.Year, th.Month, th.CurrentMonth, th.Cursor, th.Now}

	width := m.engine.Width()
	rows := make([][]cell, stripRows)
	for i := range rows {
		rows[i] = make([]cell, width)
		for j := range rows[i] {
			rows[i][j] = cell{r: ' ', style: styleTick}
		}
	}
	put := func(row, offset int, s string, limit int, style int) {
		i := 0
		for _, r := range s {
			if i >= limit || offset+i >= width {
				return
			}
			rows[row][offset+i] = cell{r: r, style: style}
			i++
		}
	}

	unit := m.engine.UnitWidth
	if m.svc != nil {
		for i, s := range m.engine.Slots(m.svc.Now()) {
			put(0, s.Start, s.YearLabel, unit, styleYear)
			month := styleMonth
			if s.Current {
				month = styleCurrent
			}
			if i == m.cursor && m.mode == modeTimeline {
				month = styleCursor
			}
			put(1, s.Start, s.Label, unit, month)
			put(2, s.Start, "┬"+strings.Repeat("─", unit-1), unit, styleTick)
			if s.Current {
				put(2, s.Start+unit/2, "┃", 1, styleNow)
			}
		}
		for _, mk := range m.markers() {
			styles = append(styles, m.theme.Marker(mk.Period.ID))
			style := len(styles) - 1
			start := mk.MonthPosition * unit
			put(3, mk.Position, "●", 1, style)
			room := unit - (mk.Position - start) - 1
			if room > 0 {
				label := truncate.StringWithTail(mk.Period.Name, uint(room), "…")
				put(3, mk.Position+1, label, room, style)
			}
			if mk.Period.ID == m.selectedID {
				put(3, start, "▸", 1, style)
			}
		}
	}

	scroll := m.engine.ClampScroll(m.scroll, m.viewport())
	end := scroll + m.viewport()
	if end > width {
		end = width
	}
	out := make([]string, stripRows)
	for i, row := range rows {
		out[i] = renderCells(row[scroll:end], styles)
	}
	return out
}

// renderCells styles runs of cells that share a style in one Render call.
func renderCells(cells []cell, styles []lipgloss.Style) string {
	var b strings.Builder
	var run strings.Builder
	style := -1
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(styles[style].Render(run.String()))
			run.Reset()
		}
	}
	for _, c := range cells {
		if c.style != style {
			flush()
			style = c.style
		}
		run.WriteRune(c.r)
	}
	flush()
	return b.String()
}

func (m *Model) scheduleView(p *period.Period) string {
	th := m.theme.Schedule
	lines := []string{
		th.Title.Render(p.Name) + "  " + th.Span.Render(p.MonthLabel()),
		th.Created.Render("Created in " + p.CreatedLabel()),
		"",
	}

	groups := period.GroupByDay(p.Schedule)
	if len(groups) == 0 {
		lines = append(lines, th.Empty.Render(emptySchedule))
	}
	i := 0
	for _, g := range groups {
		lines = append(lines, th.Day.Render(g.Name()))
		for _, t := range g.Tasks {
			line := fmt.Sprintf("  %-19s  %s", t.FormatSpan(), t.Name)
			if i == m.taskCursor && m.mode == modeSchedule {
				line = th.Active.Render(line)
			} else {
				line = th.Span.Render(fmt.Sprintf("  %-19s  ", t.FormatSpan())) + th.Task.Render(t.Name)
			}
			lines = append(lines, line)
			i++
		}
	}

	if m.mode == modeAddTask {
		lines = append(lines, "", th.Title.Render("Add task"), m.form.view(m.theme))
	}
	return th.Frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) newPeriodView() string {
	key := "this month"
	if m.svc != nil {
		key = m.svc.Now().Format("January 2006")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Schedule.Title.Render("New period for "+key),
		m.nameInput.View(),
		m.theme.Footer.Help.Render("Enter creates, Esc cancels."),
	)
	return m.theme.Schedule.Frame.Render(body)
}

func (m *Model) modal(title, body, hint string) string {
	th := m.theme.Modal
	return th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		th.Title.Render(title),
		th.Body.Render(body),
		m.theme.Footer.Help.Render(hint),
	))
}

func (m *Model) footer() string {
	var help string
	switch m.mode {
	case modeSchedule:
		help = "j/k move • a add task • x remove task • D delete period • esc back"
	case modeAddTask:
		help = "tab next field • ←/→ change day • enter add • esc cancel"
	case modeNewPeriod, modeNotice, modeConfirmDelete:
		help = ""
	default:
		help = instructions + " • ←/→ month • enter open • n new • d delete • t theme • q quit"
	}
	lines := []string{m.theme.Footer.Help.Render(help)}
	if m.status != "" {
		style := m.theme.Footer.Status
		if strings.HasPrefix(m.status, "ERR:") {
			style = m.theme.Footer.Error
		}
		lines = append(lines, style.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

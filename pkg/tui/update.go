package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/timeline"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		if !m.positioned {
			m.centerOn(m.currentSlot())
		} else {
			m.scroll = m.engine.ClampScroll(m.scroll, m.viewport())
		}
	case periodsChangedMsg, periodSelectedMsg:
		m.refresh()
	case periodCreatedMsg:
		m.handleCreated(msg)
	case mutationDoneMsg:
		if msg.err != nil {
			m.log.Errorw("saving failed", "error", msg.err)
			m.setStatus("ERR: " + msg.err.Error())
		}
		m.refresh()
	case watchStartedMsg:
		m.handleWatchStarted(msg, &cmds)
	case watchEventMsg:
		m.handleWatchEvent(msg.event, &cmds)
	case watchStoppedMsg:
		m.stopWatch()
	case tea.MouseClickMsg:
		m.handleMousePress(msg.Mouse())
	case tea.MouseMotionMsg:
		m.handleMouseMotion(msg.Mouse())
	case tea.MouseReleaseMsg:
		m.handleMouseRelease(msg.Mouse())
	case tea.KeyPressMsg:
		m.handleKeyPress(msg, &cmds)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quit(cmds)
		return
	}
	switch m.mode {
	case modeNotice:
		// Any key dismisses the notice.
		m.notice = ""
		m.mode = modeTimeline
	case modeNewPeriod:
		m.handleNewPeriodKey(msg, cmds)
	case modeConfirmDelete:
		m.handleConfirmKey(msg, cmds)
	case modeAddTask:
		m.handleAddTaskKey(msg, cmds)
	case modeSchedule:
		m.handleScheduleKey(msg, cmds)
	default:
		m.handleTimelineKey(msg, cmds)
	}
}

func (m *Model) quit(cmds *[]tea.Cmd) {
	m.stopWatch()
	m.cancel()
	*cmds = append(*cmds, tea.Quit)
}

func (m *Model) handleTimelineKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quit(cmds)
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "shift+left", "H", "[":
		m.moveCursor(-12)
	case "shift+right", "L", "]":
		m.moveCursor(12)
	case "home", "g":
		m.cursor = m.currentSlot()
		m.centerOn(m.cursor)
	case "enter", "space":
		if p, ok := m.periodAtSlot(m.cursor); ok {
			m.openSchedule(p.ID)
		}
	case "n":
		m.openNewPeriod(cmds)
	case "d", "delete":
		if p, ok := m.periodAtSlot(m.cursor); ok {
			m.confirmDelete(p)
		}
	case "t":
		m.theme = m.theme.Toggle()
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= timeline.Slots {
		m.cursor = timeline.Slots - 1
	}
	m.reveal(m.cursor)
}

func (m *Model) openNewPeriod(cmds *[]tea.Cmd) {
	m.nameInput.SetValue("")
	m.mode = modeNewPeriod
	*cmds = append(*cmds, m.nameInput.Focus())
}

func (m *Model) handleNewPeriodKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.nameInput.Blur()
		m.nameInput.SetValue("")
		m.mode = modeTimeline
		return
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" || m.svc == nil {
			return
		}
		m.nameInput.Blur()
		*cmds = append(*cmds, createPeriodCmd(m.ctx, m.svc, name))
		return
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	*cmds = append(*cmds, cmd)
}

func (m *Model) handleCreated(msg periodCreatedMsg) {
	var dup *app.DuplicateMonthError
	switch {
	case errors.As(msg.err, &dup):
		m.notice = dup.Error()
		m.mode = modeNotice
		return
	case msg.err != nil && msg.period == nil:
		m.setStatus("ERR: " + msg.err.Error())
		m.mode = modeTimeline
		return
	case msg.err != nil:
		m.log.Errorw("period created but not saved", "error", msg.err)
		m.setStatus("ERR: " + msg.err.Error())
	}
	m.nameInput.SetValue("")
	m.mode = modeTimeline
	m.refresh()
	if mk, ok := m.engine.Place(msg.period, m.svc.Now()); ok {
		m.cursor = mk.MonthPosition
		m.reveal(m.cursor)
	}
	if msg.err == nil {
		m.setStatus("Created " + msg.period.Name)
	}
}

func (m *Model) openSchedule(periodID string) {
	if m.svc == nil {
		return
	}
	if _, ok := m.svc.Select(periodID); !ok {
		return
	}
	m.selectedID = periodID
	m.taskCursor = 0
	m.mode = modeSchedule
	m.refresh()
}

func (m *Model) closeSchedule() {
	if m.svc != nil {
		m.svc.ClearSelection()
	}
	m.selectedID = ""
	m.form.reset()
	m.mode = modeTimeline
}

// orderedTasks is the schedule in display order, which the task cursor indexes.
func orderedTasks(p *period.Period) []period.Task {
	var out []period.Task
	for _, g := range period.GroupByDay(p.Schedule) {
		out = append(out, g.Tasks...)
	}
	return out
}

func (m *Model) handleScheduleKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	p, ok := m.selected()
	if !ok {
		m.closeSchedule()
		return
	}
	tasks := orderedTasks(p)

	switch msg.String() {
	case "esc", "q":
		m.closeSchedule()
	case "up", "k":
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case "down", "j":
		if m.taskCursor < len(tasks)-1 {
			m.taskCursor++
		}
	case "a", "n":
		m.form.reset()
		m.mode = modeAddTask
		*cmds = append(*cmds, m.form.setFocus(fieldName))
	case "x", "delete", "backspace":
		if m.taskCursor < len(tasks) {
			*cmds = append(*cmds, removeTaskCmd(m.ctx, m.svc, p.ID, tasks[m.taskCursor].ID))
		}
	case "D":
		m.confirmDelete(p)
	case "t":
		m.theme = m.theme.Toggle()
	}
}

func (m *Model) handleAddTaskKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	p, ok := m.selected()
	if !ok {
		m.closeSchedule()
		return
	}
	switch msg.String() {
	case "esc":
		m.form.reset()
		m.mode = modeSchedule
		return
	case "enter":
		in := m.form.input()
		// Incomplete input keeps the form open without a message.
		if _, ok := in.Task(""); !ok {
			return
		}
		m.form.reset()
		m.mode = modeSchedule
		*cmds = append(*cmds, addTaskCmd(m.ctx, m.svc, p.ID, in))
		return
	}
	*cmds = append(*cmds, m.form.update(msg))
}

func (m *Model) confirmDelete(p *period.Period) {
	m.pending = p
	m.mode = modeConfirmDelete
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if m.pending != nil && m.svc != nil {
			*cmds = append(*cmds, deletePeriodCmd(m.ctx, m.svc, m.pending.ID))
			if m.pending.ID == m.selectedID {
				m.selectedID = ""
			}
			m.setStatus("Deleted " + m.pending.Name)
		}
		m.pending = nil
		m.form.reset()
		m.mode = modeTimeline
	case "n", "N", "esc":
		m.pending = nil
		if _, ok := m.selected(); ok {
			m.mode = modeSchedule
		} else {
			m.mode = modeTimeline
		}
	}
}

// stripRow reports whether y is one of the strip rows.
func stripRow(y int) bool {
	return y >= rowYears && y < rowYears+stripRows
}

func (m *Model) handleMousePress(mouse tea.Mouse) {
	if mouse.Button != tea.MouseLeft || m.mode != modeTimeline || !stripRow(mouse.Y) {
		return
	}
	m.drag.Press(mouse.X, m.scroll)
}

func (m *Model) handleMouseMotion(mouse tea.Mouse) {
	if !m.drag.Active() {
		return
	}
	if !stripRow(mouse.Y) {
		// Leaving the strip ends the drag like leaving the surface.
		m.drag.Leave()
		return
	}
	if scroll, ok := m.drag.Move(mouse.X); ok {
		m.scroll = m.engine.ClampScroll(scroll, m.viewport())
	}
}

// handleMouseRelease ends a drag. A press and release at the same column is a
// click, which opens the schedule of the period under the pointer.
func (m *Model) handleMouseRelease(mouse tea.Mouse) {
	if !m.drag.Active() {
		return
	}
	click := !m.drag.Moved(mouse.X)
	m.drag.Release()
	if !click {
		return
	}
	x := m.scroll + mouse.X
	slot := x / m.engine.UnitWidth
	if slot >= 0 && slot < timeline.Slots {
		m.cursor = slot
	}
	if mk, ok := m.engine.Hit(m.markers(), x); ok {
		m.openSchedule(mk.Period.ID)
	}
}

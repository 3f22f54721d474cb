package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/tui/theme"
)

type formField int

const (
	fieldName formField = iota
	fieldStart
	fieldEnd
	fieldDay
	fieldCount
)

// taskForm is the add-task form of the schedule panel. It only produces a
// period.TaskInput; validation happens in TaskInput.Task.
type taskForm struct {
	name  textinput.Model
	start textinput.Model
	end   textinput.Model
	day   int
	focus formField
}

func newTaskForm() taskForm {
	name := textinput.New()
	name.Placeholder = "Task name"
	name.CharLimit = 128
	name.Prompt = ""

	start := textinput.New()
	start.Placeholder = "09:00"
	start.CharLimit = 5
	start.Prompt = ""

	end := textinput.New()
	end.Placeholder = "10:00"
	end.CharLimit = 5
	end.Prompt = ""

	return taskForm{
		name:  name,
		start: start,
		end:   end,
		day:   period.DefaultDay,
	}
}

// reset clears every field and restores the default day.
func (f *taskForm) reset() {
	f.name.SetValue("")
	f.start.SetValue("")
	f.end.SetValue("")
	f.day = period.DefaultDay
	f.setFocus(fieldName)
}

func (f *taskForm) input() period.TaskInput {
	return period.TaskInput{
		Name:      f.name.Value(),
		StartTime: f.start.Value(),
		EndTime:   f.end.Value(),
		DayOfWeek: f.day,
	}
}

func (f *taskForm) setFocus(field formField) tea.Cmd {
	f.focus = (field + fieldCount) % fieldCount
	f.name.Blur()
	f.start.Blur()
	f.end.Blur()
	switch f.focus {
	case fieldName:
		return f.name.Focus()
	case fieldStart:
		return f.start.Focus()
	case fieldEnd:
		return f.end.Focus()
	}
	return nil
}

// update routes keys to the focused field. The day field cycles with left and
// right.
func (f *taskForm) update(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return f.setFocus(f.focus - 1)
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldStart:
		f.start, cmd = f.start.Update(msg)
	case fieldEnd:
		f.end, cmd = f.end.Update(msg)
	case fieldDay:
		switch msg.String() {
		case "left", "h":
			f.day = (f.day + 6) % 7
		case "right", "l", "space":
			f.day = (f.day + 1) % 7
		default:
			if d, ok := period.ParseWeekday(msg.String()); ok {
				f.day = d
			}
		}
	}
	return cmd
}

func (f *taskForm) view(th theme.Theme) string {
	label := func(field formField, text string) string {
		if f.focus == field {
			return th.Schedule.FieldSel.Render(text)
		}
		return th.Schedule.Field.Render(text)
	}
	day := period.WeekdayName(f.day)
	if f.focus == fieldDay {
		day = "‹ " + day + " ›"
	}
	rows := []string{
		label(fieldName, "Name  ") + " " + f.name.View(),
		label(fieldStart, "Start ") + " " + f.start.View(),
		label(fieldEnd, "End   ") + " " + f.end.View(),
		label(fieldDay, "Day   ") + " " + day,
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n"))
}

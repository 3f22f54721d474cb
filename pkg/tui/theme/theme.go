// Package theme holds the Lip Gloss styles of the timeline UI in a dark and a
// light variant.
package theme

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Dark bool

	Header   HeaderTheme
	Strip    StripTheme
	Schedule ScheduleTheme
	Footer   FooterTheme
	Modal    ModalTheme
}

// HeaderTheme styles the title line.
type HeaderTheme struct {
	Title lipgloss.Style
	Hint  lipgloss.Style
}

// StripTheme styles the timeline rows.
type StripTheme struct {
	Year         lipgloss.Style
	Month        lipgloss.Style
	CurrentMonth lipgloss.Style
	Cursor       lipgloss.Style
	Tick         lipgloss.Style
	Now          lipgloss.Style
}

// ScheduleTheme styles the schedule panel.
type ScheduleTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Created  lipgloss.Style
	Day      lipgloss.Style
	Span     lipgloss.Style
	Task     lipgloss.Style
	Active   lipgloss.Style
	Empty    lipgloss.Style
	Field    lipgloss.Style
	FieldSel lipgloss.Style
}

// FooterTheme groups styles used by the bottom help line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ModalTheme styles centered notices and prompts.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// New returns the dark or light theme.
func New(dark bool) Theme {
	fg, muted, faint, accent, alert := "252", "245", "240", "212", "204"
	if !dark {
		fg, muted, faint, accent, alert = "235", "242", "250", "162", "160"
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(muted)).
		Padding(0, 2)

	return Theme{
		Dark: dark,
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
			Hint:  lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		},
		Strip: StripTheme{
			Year:         lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Bold(true),
			Month:        lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
			CurrentMonth: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
			Cursor:       lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Reverse(true),
			Tick:         lipgloss.NewStyle().Foreground(lipgloss.Color(faint)),
			Now:          lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		},
		Schedule: ScheduleTheme{
			Frame:    frame,
			Title:    lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Bold(true),
			Created:  lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Italic(true),
			Day:      lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
			Span:     lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
			Task:     lipgloss.NewStyle().Foreground(lipgloss.Color(fg)),
			Active:   lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Reverse(true),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Italic(true),
			Field:    lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
			FieldSel: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color(faint)),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(alert)),
		},
		Modal: ModalTheme{
			Frame: frame.BorderForeground(lipgloss.Color(alert)).Padding(1, 2),
			Title: lipgloss.NewStyle().Foreground(lipgloss.Color(alert)).Bold(true),
			Body:  lipgloss.NewStyle().Foreground(lipgloss.Color(fg)),
		},
	}
}

// Toggle returns the opposite variant.
func (t Theme) Toggle() Theme {
	return New(!t.Dark)
}

// MarkerColor derives a stable color for a period id, lighter on dark
// backgrounds.
func (t Theme) MarkerColor(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	hue := float64(h.Sum32() % 360)
	value := 0.95
	if !t.Dark {
		value = 0.65
	}
	return colorful.Hsv(hue, 0.6, value).Clamped().Hex()
}

// Marker is the style of a period's dot and label.
func (t Theme) Marker(id string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.MarkerColor(id))).Bold(true)
}

func (t Theme) String() string {
	if t.Dark {
		return "dark"
	}
	return "light"
}

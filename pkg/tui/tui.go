// Package tui hosts the Bubble Tea program for the interactive timeline.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/store"
	"tableflip.dev/timelined/pkg/timeline"
	"tableflip.dev/timelined/pkg/tui/theme"
)

type mode int

const (
	modeTimeline mode = iota
	modeNewPeriod
	modeSchedule
	modeAddTask
	modeNotice
	modeConfirmDelete
)

// Rows of the strip, counted from the top of the view.
const (
	rowYears = iota + 2
	rowMonths
	rowTicks
	rowMarkers
	stripRows = 4
)

const defaultViewport = 80

// Options configures the UI.
type Options struct {
	// UnitWidth is the number of columns per month slot.
	UnitWidth int
	// Light starts with the light theme.
	Light bool
	Log   *zap.SugaredLogger
}

// Model contains UI state.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.SugaredLogger
	theme  theme.Theme

	mode mode

	engine     timeline.Engine
	drag       *timeline.Drag
	scroll     int
	positioned bool
	// cursor is the keyboard-selected month slot, 0..timeline.Slots-1.
	cursor int

	periods    []*period.Period
	selectedID string
	taskCursor int

	nameInput textinput.Model
	form      taskForm

	notice  string
	status  string
	pending *period.Period

	termWidth  int
	termHeight int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds the model. svc may be nil in tests of pure view state.
func New(svc *app.Service, opts Options) *Model {
	unit := opts.UnitWidth
	if unit < 4 {
		unit = 10
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	ctx, cancel := context.WithCancel(context.Background())
	ti := textinput.New()
	ti.Placeholder = "Period name"
	ti.CharLimit = 128
	ti.Prompt = "> "

	engine := timeline.Engine{UnitWidth: unit, Sensitivity: timeline.DefaultSensitivity}
	m := &Model{
		svc:       svc,
		ctx:       ctx,
		cancel:    cancel,
		log:       log,
		theme:     theme.New(!opts.Light),
		engine:    engine,
		drag:      engine.NewDrag(),
		nameInput: ti,
		form:      newTaskForm(),
	}
	if svc != nil {
		m.periods = svc.Periods()
	}
	m.cursor = m.currentSlot()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	if !opts.Light {
		opts.Light = !termenv.HasDarkBackground()
	}
	m := New(svc, opts)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	svc.SetListener(app.ListenerFuncs{
		OnPeriodSelected: func(sel *period.Period) {
			go p.Send(periodSelectedMsg{id: sel.ID})
		},
		OnScheduleChanged: func(periodID string, _ []period.Task) {
			go p.Send(periodsChangedMsg{})
		},
		OnPeriodDeleted: func(periodID string) {
			go p.Send(periodsChangedMsg{})
		},
	})
	defer svc.SetListener(nil)

	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.svc)
}

// viewport is the strip width in columns.
func (m *Model) viewport() int {
	if m.termWidth <= 0 {
		return defaultViewport
	}
	return m.termWidth
}

func (m *Model) now() period.Key {
	if m.svc == nil {
		return period.Key{}
	}
	return period.KeyOf(m.svc.Now())
}

// currentSlot is the slot of the clock's month; it is always the 13th..24th
// slot since the window is centered on the current year.
func (m *Model) currentSlot() int {
	if m.svc == nil {
		return 12
	}
	return 12 + m.now().Month
}

// centerOn scrolls so that slot is in the middle of the viewport.
func (m *Model) centerOn(slot int) {
	position := slot*m.engine.UnitWidth + m.engine.UnitWidth/2
	m.scroll = m.engine.ScrollTo(position, m.viewport())
	m.positioned = true
}

// reveal scrolls the minimum needed to bring slot into view.
func (m *Model) reveal(slot int) {
	start := slot * m.engine.UnitWidth
	end := start + m.engine.UnitWidth
	switch {
	case start < m.scroll:
		m.scroll = start
	case end > m.scroll+m.viewport():
		m.scroll = end - m.viewport()
	}
	m.scroll = m.engine.ClampScroll(m.scroll, m.viewport())
}

func (m *Model) markers() []timeline.Marker {
	if m.svc == nil {
		return nil
	}
	return m.engine.Layout(m.periods, m.svc.Now())
}

// periodAtSlot returns the period drawn in slot.
func (m *Model) periodAtSlot(slot int) (*period.Period, bool) {
	mk, ok := m.engine.Hit(m.markers(), slot*m.engine.UnitWidth)
	if !ok {
		return nil, false
	}
	return mk.Period, true
}

func (m *Model) selected() (*period.Period, bool) {
	for _, p := range m.periods {
		if p.ID == m.selectedID {
			return p, true
		}
	}
	return nil, false
}

func (m *Model) refresh() {
	if m.svc == nil {
		return
	}
	m.periods = m.svc.Periods()
	if sel, ok := m.svc.Selected(); ok {
		m.selectedID = sel.ID
	} else {
		m.selectedID = ""
	}
	if m.selectedID == "" && (m.mode == modeSchedule || m.mode == modeAddTask) {
		m.mode = modeTimeline
	}
	if p, ok := m.selected(); ok && m.taskCursor >= len(p.Schedule) {
		m.taskCursor = len(p.Schedule) - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
}

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/store"
)

type periodsChangedMsg struct{}

type periodSelectedMsg struct {
	id string
}

type periodCreatedMsg struct {
	period *period.Period
	err    error
}

type mutationDoneMsg struct {
	err error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func createPeriodCmd(ctx context.Context, svc *app.Service, name string) tea.Cmd {
	return func() tea.Msg {
		p, err := svc.CreatePeriod(ctx, name)
		return periodCreatedMsg{period: p, err: err}
	}
}

func addTaskCmd(ctx context.Context, svc *app.Service, periodID string, in period.TaskInput) tea.Cmd {
	return func() tea.Msg {
		_, _, err := svc.AddTask(ctx, periodID, in)
		return mutationDoneMsg{err: err}
	}
}

func removeTaskCmd(ctx context.Context, svc *app.Service, periodID, taskID string) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: svc.RemoveTask(ctx, periodID, taskID)}
	}
}

func deletePeriodCmd(ctx context.Context, svc *app.Service, periodID string) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{err: svc.DeletePeriod(ctx, periodID)}
	}
}

func reloadCmd(ctx context.Context, svc *app.Service) tea.Cmd {
	return func() tea.Msg {
		svc.Reload(ctx)
		return periodsChangedMsg{}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) handleWatchStarted(msg watchStartedMsg, cmds *[]tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, app.ErrWatchUnsupported) {
			m.log.Debugw("storage cannot be watched", "error", msg.err)
			return
		}
		m.log.Warnw("watch failed to start", "error", msg.err)
		m.setStatus("ERR: watch " + msg.err.Error())
		return
	}
	m.stopWatch()
	m.watchCh = msg.ch
	m.watchCancel = msg.cancel
	if cmd := m.waitForWatch(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) handleWatchEvent(ev store.Event, cmds *[]tea.Cmd) {
	if ev.Type == store.EventWatchError {
		m.log.Warnw("storage watch reported an error, reloading")
	}
	*cmds = append(*cmds, reloadCmd(m.ctx, m.svc))
	if cmd := m.waitForWatch(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

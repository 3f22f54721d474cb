package app

import "tableflip.dev/timelined/pkg/period"

// Listener receives the notifications the presentation layer reacts to.
type Listener interface {
	PeriodSelected(p *period.Period)
	ScheduleChanged(periodID string, tasks []period.Task)
	PeriodDeleted(periodID string)
}

// ListenerFuncs adapts plain functions to Listener; nil fields are skipped.
type ListenerFuncs struct {
	OnPeriodSelected  func(p *period.Period)
	OnScheduleChanged func(periodID string, tasks []period.Task)
	OnPeriodDeleted   func(periodID string)
}

func (l ListenerFuncs) PeriodSelected(p *period.Period) {
	if l.OnPeriodSelected != nil {
		l.OnPeriodSelected(p)
	}
}

func (l ListenerFuncs) ScheduleChanged(periodID string, tasks []period.Task) {
	if l.OnScheduleChanged != nil {
		l.OnScheduleChanged(periodID, tasks)
	}
}

func (l ListenerFuncs) PeriodDeleted(periodID string) {
	if l.OnPeriodDeleted != nil {
		l.OnPeriodDeleted(periodID)
	}
}

type nopListener struct{}

func (nopListener) PeriodSelected(*period.Period)         {}
func (nopListener) ScheduleChanged(string, []period.Task) {}
func (nopListener) PeriodDeleted(string)                  {}

// Package app owns the canonical period list. UIs and CLIs mutate periods only
// through Service, which enforces the one-period-per-month rule and writes the
// whole list back to storage after every change.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/store"
)

// Service provides the period operations shared by the CLI and the TUI.
type Service struct {
	persistence store.Persistence
	clock       func() time.Time
	newID       func() string
	listener    Listener
	log         *zap.SugaredLogger

	mu       sync.Mutex
	periods  []*period.Period
	selected string
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithIDs replaces the uuid based identifier generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithListener registers the presentation callbacks.
func WithListener(l Listener) Option {
	return func(s *Service) { s.listener = l }
}

// WithLogger sets the logger; the default discards.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Service) { s.log = log }
}

// New creates a service over p. Call Load before use.
func New(p store.Persistence, opts ...Option) *Service {
	s := &Service{
		persistence: p,
		clock:       time.Now,
		newID:       uuid.NewString,
		listener:    nopListener{},
		log:         zap.NewNop().Sugar(),
		periods:     []*period.Period{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a service over p and loads the stored periods.
func Open(ctx context.Context, p store.Persistence, opts ...Option) *Service {
	s := New(p, opts...)
	s.Load(ctx)
	return s
}

// SetListener replaces the presentation callbacks.
func (s *Service) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock()
}

// Load replaces the in-memory list with the stored one. Missing or unreadable
// state yields an empty list; the failure is logged, never returned. The read
// happens under the service lock so a concurrent mutation lands either before
// the read or after the replacement.
func (s *Service) Load(ctx context.Context) []*period.Period {
	s.mu.Lock()
	loaded := []*period.Period{}
	if s.persistence == nil {
		s.log.Warnw("no persistence configured, starting empty")
	} else if list, err := s.persistence.Load(ctx); err != nil {
		s.log.Warnw("stored periods unreadable, starting empty", "error", err)
	} else {
		loaded = list
	}
	s.periods = loaded
	if s.selected != "" && s.indexLocked(s.selected) < 0 {
		s.selected = ""
	}
	out := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debugw("periods loaded", "count", len(out))
	return out
}

// Reload is Load for callers reacting to external writes.
func (s *Service) Reload(ctx context.Context) []*period.Period {
	return s.Load(ctx)
}

// Watch forwards change events from the storage backend, when it supports
// watching. Backends that log get the service logger.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if w, ok := s.persistence.(store.LoggingWatcher); ok {
		return w.WatchWithLogger(ctx, s.log.With("component", "watch"))
	}
	w, ok := s.persistence.(store.Watcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

// Periods returns copies of all periods in insertion order.
func (s *Service) Periods() []*period.Period {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Period returns a copy of the period with id.
func (s *Service) Period(id string) (*period.Period, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.periods[i].Clone(), true
	}
	return nil, false
}

// Current returns the period occupying the clock's current month.
func (s *Service) Current() (*period.Period, bool) {
	key := period.KeyOf(s.clock())
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.periods {
		if p.Key() == key {
			return p.Clone(), true
		}
	}
	return nil, false
}

// Resolve is Find, except that an empty reference means the current month's
// period.
func (s *Service) Resolve(ref string) (*period.Period, error) {
	if strings.TrimSpace(ref) != "" {
		return s.Find(ref)
	}
	if p, ok := s.Current(); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: no period for %s", ErrPeriodNotFound, period.KeyOf(s.clock()))
}

// Find resolves a user supplied reference: an exact id, a unique id prefix, a
// case-insensitive name, or a "YYYY-MM" month.
func (s *Service) Find(ref string) (*period.Period, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrPeriodNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(ref); i >= 0 {
		return s.periods[i].Clone(), nil
	}
	if key, ok := period.ParseKey(ref); ok {
		for _, p := range s.periods {
			if p.Key() == key {
				return p.Clone(), nil
			}
		}
	}

	var matches []*period.Period
	for _, p := range s.periods {
		if strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		for _, p := range s.periods {
			if strings.HasPrefix(p.ID, ref) {
				matches = append(matches, p)
			}
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrPeriodNotFound, ref)
	case 1:
		return matches[0].Clone(), nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d periods", ErrAmbiguous, ref, len(matches))
	}
}

// CreatePeriod appends a period for the clock's current month. It fails with a
// *DuplicateMonthError naming the occupying period when the month is taken.
func (s *Service) CreatePeriod(ctx context.Context, name string) (*period.Period, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if s.persistence == nil {
		return nil, ErrNoPersistence
	}

	now := s.clock()
	key := period.KeyOf(now)

	s.mu.Lock()
	for _, p := range s.periods {
		if p.Key() == key {
			existing := p.Clone()
			s.mu.Unlock()
			return nil, &DuplicateMonthError{Existing: existing}
		}
	}
	p := period.New(s.newID(), name, now)
	s.periods = append(s.periods, p)
	created := p.Clone()
	err := s.saveLocked(ctx)
	s.mu.Unlock()

	s.log.Infow("period created", "id", created.ID, "name", created.Name, "month", key.String())
	return created, err
}

// UpdateSchedule replaces the schedule of periodID with tasks. An unknown id is
// ignored: the period may have been deleted from another part of the UI.
func (s *Service) UpdateSchedule(ctx context.Context, periodID string, tasks []period.Task) error {
	_, err := s.mutateSchedule(ctx, periodID, func([]period.Task) []period.Task {
		return period.CloneTasks(tasks)
	})
	return err
}

// AddTask validates in and appends it to the schedule of periodID. ok is false
// when the input is incomplete or the period is gone, in which case nothing is
// stored.
func (s *Service) AddTask(ctx context.Context, periodID string, in period.TaskInput) (task period.Task, ok bool, err error) {
	task, ok = in.Task(s.newID())
	if !ok {
		return period.Task{}, false, nil
	}
	found, err := s.mutateSchedule(ctx, periodID, func(tasks []period.Task) []period.Task {
		return append(tasks, task)
	})
	if !found {
		return period.Task{}, false, nil
	}
	return task, true, err
}

// RemoveTask drops taskID from the schedule of periodID.
func (s *Service) RemoveTask(ctx context.Context, periodID, taskID string) error {
	_, err := s.mutateSchedule(ctx, periodID, func(tasks []period.Task) []period.Task {
		out := make([]period.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.ID != taskID {
				out = append(out, t)
			}
		}
		return out
	})
	return err
}

// mutateSchedule reads, rewrites and saves the schedule of periodID in one
// critical section. found is false for an unknown id, which is a no-op.
func (s *Service) mutateSchedule(ctx context.Context, periodID string, mutate func([]period.Task) []period.Task) (found bool, err error) {
	if s.persistence == nil {
		return false, ErrNoPersistence
	}
	s.mu.Lock()
	i := s.indexLocked(periodID)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debugw("schedule update for unknown period ignored", "id", periodID)
		return false, nil
	}
	updated := s.periods[i].Clone()
	updated.Schedule = mutate(period.CloneTasks(updated.Schedule))
	s.periods[i] = updated
	err = s.saveLocked(ctx)
	tasks := period.CloneTasks(updated.Schedule)
	listener := s.listener
	s.mu.Unlock()

	listener.ScheduleChanged(periodID, tasks)
	return true, err
}

// DeletePeriod removes periodID together with its tasks. Deleting an unknown id
// is a no-op.
func (s *Service) DeletePeriod(ctx context.Context, periodID string) error {
	if s.persistence == nil {
		return ErrNoPersistence
	}
	s.mu.Lock()
	i := s.indexLocked(periodID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.periods = append(s.periods[:i:i], s.periods[i+1:]...)
	if s.selected == periodID {
		s.selected = ""
	}
	err := s.saveLocked(ctx)
	listener := s.listener
	s.mu.Unlock()

	s.log.Infow("period deleted", "id", periodID)
	listener.PeriodDeleted(periodID)
	return err
}

// Select marks periodID as the selected period and notifies the listener.
func (s *Service) Select(periodID string) (*period.Period, bool) {
	s.mu.Lock()
	i := s.indexLocked(periodID)
	if i < 0 {
		s.mu.Unlock()
		return nil, false
	}
	s.selected = periodID
	p := s.periods[i].Clone()
	listener := s.listener
	s.mu.Unlock()

	listener.PeriodSelected(p)
	return p, true
}

// Selected returns the selected period, if it still exists.
func (s *Service) Selected() (*period.Period, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(s.selected); i >= 0 {
		return s.periods[i].Clone(), true
	}
	return nil, false
}

// ClearSelection forgets the selected period.
func (s *Service) ClearSelection() {
	s.mu.Lock()
	s.selected = ""
	s.mu.Unlock()
}

// saveLocked writes the whole list. The in-memory change stands even if the
// write fails.
func (s *Service) saveLocked(ctx context.Context) error {
	if err := s.persistence.Save(ctx, s.periods); err != nil {
		s.log.Errorw("saving periods failed", "error", err)
		return fmt.Errorf("app: save periods: %w", err)
	}
	return nil
}

func (s *Service) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range s.periods {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) snapshotLocked() []*period.Period {
	out := make([]*period.Period, len(s.periods))
	for i, p := range s.periods {
		out[i] = p.Clone()
	}
	return out
}

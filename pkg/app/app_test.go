package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/store"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestService(t *testing.T, p store.Persistence, now time.Time, opts ...Option) (*Service, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: now}
	opts = append([]Option{WithClock(clock.Now), WithIDs(sequentialIDs())}, opts...)
	return Open(context.Background(), p, opts...), clock
}

var june2025 = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func TestCreatePeriodUsesCurrentMonth(t *testing.T) {
	mem := store.NewMemory()
	svc, _ := newTestService(t, mem, june2025)

	p, err := svc.CreatePeriod(context.Background(), "  Work  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Work" || p.Month != 5 || p.Year != 2025 || p.ID != "id-1" {
		t.Fatalf("unexpected period %+v", p)
	}
	if len(p.Schedule) != 0 {
		t.Fatalf("expected empty schedule")
	}
	if mem.Saves() != 1 {
		t.Fatalf("expected one save, got %d", mem.Saves())
	}
}

func TestCreatePeriodRejectsBlankName(t *testing.T) {
	mem := store.NewMemory()
	svc, _ := newTestService(t, mem, june2025)
	if _, err := svc.CreatePeriod(context.Background(), "   "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if mem.Saves() != 0 || len(svc.Periods()) != 0 {
		t.Fatalf("blank name must not mutate")
	}
}

func TestCreatePeriodDuplicateMonth(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc, _ := newTestService(t, mem, june2025)
	if _, err := svc.CreatePeriod(ctx, "Work"); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.CreatePeriod(ctx, "Gym")
	if !errors.Is(err, ErrDuplicateMonth) {
		t.Fatalf("expected ErrDuplicateMonth, got %v", err)
	}
	var dup *DuplicateMonthError
	if !errors.As(err, &dup) || dup.Existing.Name != "Work" {
		t.Fatalf("expected conflicting period Work, got %v", err)
	}
	want := `A period "Work" already exists for this month. Only one period per month is allowed.`
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if got := svc.Periods(); len(got) != 1 {
		t.Fatalf("store must be unchanged, has %d periods", len(got))
	}
	if mem.Saves() != 1 {
		t.Fatalf("duplicate must not save, saves=%d", mem.Saves())
	}
}

func TestMonthInvariantAcrossMonths(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t, store.NewMemory(), time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))

	for i := 0; i < 14; i++ {
		name := fmt.Sprintf("P%d", i)
		if _, err := svc.CreatePeriod(ctx, name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := svc.CreatePeriod(ctx, name+"-again"); !errors.Is(err, ErrDuplicateMonth) {
			t.Fatalf("second create in same month should fail, got %v", err)
		}
		clock.now = clock.now.AddDate(0, 1, 0)
	}

	seen := map[period.Key]string{}
	for _, p := range svc.Periods() {
		if other, ok := seen[p.Key()]; ok {
			t.Fatalf("periods %s and %s share %s", other, p.Name, p.Key())
		}
		seen[p.Key()] = p.Name
	}
	if len(seen) != 14 {
		t.Fatalf("expected 14 periods, got %d", len(seen))
	}
}

func TestPeriodsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t, store.NewMemory(), june2025)
	_, _ = svc.CreatePeriod(ctx, "June")
	clock.now = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, _ = svc.CreatePeriod(ctx, "March")

	got := svc.Periods()
	if got[0].Name != "June" || got[1].Name != "March" {
		t.Fatalf("expected insertion order, got %s, %s", got[0].Name, got[1].Name)
	}
}

func TestUpdateScheduleReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	var changed []string
	svc, _ := newTestService(t, store.NewMemory(), june2025, WithListener(ListenerFuncs{
		OnScheduleChanged: func(id string, tasks []period.Task) {
			changed = append(changed, fmt.Sprintf("%s:%d", id, len(tasks)))
		},
	}))
	p, _ := svc.CreatePeriod(ctx, "Work")

	first := []period.Task{
		{ID: "a", Name: "A", StartTime: "09:00", EndTime: "10:00", DayOfWeek: 1},
		{ID: "b", Name: "B", StartTime: "11:00", EndTime: "12:00", DayOfWeek: 2},
	}
	if err := svc.UpdateSchedule(ctx, p.ID, first); err != nil {
		t.Fatalf("update: %v", err)
	}
	second := []period.Task{{ID: "c", Name: "C", StartTime: "07:00", EndTime: "08:00", DayOfWeek: 0}}
	if err := svc.UpdateSchedule(ctx, p.ID, second); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := svc.Period(p.ID)
	if len(got.Schedule) != 1 || got.Schedule[0].ID != "c" {
		t.Fatalf("expected schedule replaced, got %+v", got.Schedule)
	}
	second[0].Name = "mutated"
	got, _ = svc.Period(p.ID)
	if got.Schedule[0].Name != "C" {
		t.Fatalf("service must not alias caller slices")
	}
	if len(changed) != 2 || changed[1] != p.ID+":1" {
		t.Fatalf("unexpected notifications %v", changed)
	}
}

func TestUpdateScheduleUnknownPeriodIsNoop(t *testing.T) {
	mem := store.NewMemory()
	svc, _ := newTestService(t, mem, june2025)
	if err := svc.UpdateSchedule(context.Background(), "missing", []period.Task{{ID: "x"}}); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if mem.Saves() != 0 {
		t.Fatalf("no-op must not save")
	}
}

func TestAddAndRemoveTask(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, store.NewMemory(), june2025)
	p, _ := svc.CreatePeriod(ctx, "Work")

	task, ok, err := svc.AddTask(ctx, p.ID, period.TaskInput{Name: "Gym", StartTime: "6:30", EndTime: "7:30", DayOfWeek: 2})
	if err != nil || !ok {
		t.Fatalf("add task: ok=%v err=%v", ok, err)
	}
	if task.StartTime != "06:30" {
		t.Fatalf("expected normalized start time, got %q", task.StartTime)
	}

	if _, ok, _ := svc.AddTask(ctx, p.ID, period.TaskInput{Name: "", StartTime: "6:30", EndTime: "7:30"}); ok {
		t.Fatalf("blank task name must be skipped")
	}
	if _, ok, _ := svc.AddTask(ctx, p.ID, period.TaskInput{Name: "No end", StartTime: "6:30"}); ok {
		t.Fatalf("missing end time must be skipped")
	}

	got, _ := svc.Period(p.ID)
	if len(got.Schedule) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got.Schedule))
	}

	if err := svc.RemoveTask(ctx, p.ID, task.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ = svc.Period(p.ID)
	if len(got.Schedule) != 0 {
		t.Fatalf("expected empty schedule, got %d", len(got.Schedule))
	}
}

func TestDeletePeriodIdempotent(t *testing.T) {
	ctx := context.Background()
	var deleted []string
	mem := store.NewMemory()
	svc, _ := newTestService(t, mem, june2025, WithListener(ListenerFuncs{
		OnPeriodDeleted: func(id string) { deleted = append(deleted, id) },
	}))
	p, _ := svc.CreatePeriod(ctx, "Work")

	if err := svc.DeletePeriod(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	once := string(mem.Raw())
	if err := svc.DeletePeriod(ctx, p.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if string(mem.Raw()) != once || len(svc.Periods()) != 0 {
		t.Fatalf("second delete changed state")
	}
	if len(deleted) != 1 {
		t.Fatalf("expected one delete notification, got %v", deleted)
	}
}

func TestDeleteClearsSelection(t *testing.T) {
	ctx := context.Background()
	var selected []string
	svc, _ := newTestService(t, store.NewMemory(), june2025, WithListener(ListenerFuncs{
		OnPeriodSelected: func(p *period.Period) { selected = append(selected, p.Name) },
	}))
	p, _ := svc.CreatePeriod(ctx, "Work")

	if _, ok := svc.Select(p.ID); !ok {
		t.Fatalf("select failed")
	}
	if got, ok := svc.Selected(); !ok || got.ID != p.ID {
		t.Fatalf("expected selection")
	}
	if err := svc.DeletePeriod(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := svc.Selected(); ok {
		t.Fatalf("selection must be cleared by delete")
	}
	if len(selected) != 1 || selected[0] != "Work" {
		t.Fatalf("unexpected selection notifications %v", selected)
	}
	if _, ok := svc.Select("missing"); ok {
		t.Fatalf("selecting unknown id must fail")
	}
}

func TestCascadeDeleteSurvivesReload(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc, _ := newTestService(t, mem, june2025)
	p, _ := svc.CreatePeriod(ctx, "Work")
	for i, start := range []string{"08:00", "09:00", "10:00"} {
		in := period.TaskInput{Name: fmt.Sprintf("T%d", i), StartTime: start, EndTime: "11:00", DayOfWeek: i}
		if _, ok, err := svc.AddTask(ctx, p.ID, in); !ok || err != nil {
			t.Fatalf("add task %d: ok=%v err=%v", i, ok, err)
		}
	}

	if err := svc.DeletePeriod(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	reloaded, _ := newTestService(t, mem, june2025)
	if got := reloaded.Periods(); len(got) != 0 {
		t.Fatalf("expected no periods after reload, got %d", len(got))
	}
	stored, err := mem.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("deleted period still persisted")
	}
}

func TestLoadFailsOpen(t *testing.T) {
	mem := store.NewMemory()
	mem.SetRaw([]byte("{definitely not json"))
	svc, _ := newTestService(t, mem, june2025)
	if got := svc.Periods(); len(got) != 0 {
		t.Fatalf("expected empty list on corrupt storage, got %d", len(got))
	}
	if _, err := svc.CreatePeriod(context.Background(), "Fresh"); err != nil {
		t.Fatalf("create after corrupt load: %v", err)
	}
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t, store.NewMemory(), june2025)
	work, _ := svc.CreatePeriod(ctx, "Work")
	clock.now = time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	_, _ = svc.CreatePeriod(ctx, "Summer")

	tests := []struct {
		ref  string
		want string
		err  error
	}{
		{ref: work.ID, want: "Work"},
		{ref: "work", want: "Work"},
		{ref: "2025-07", want: "Summer"},
		{ref: "id-", err: ErrAmbiguous},
		{ref: "2024-01", err: ErrPeriodNotFound},
		{ref: "", err: ErrPeriodNotFound},
	}
	for _, tt := range tests {
		got, err := svc.Find(tt.ref)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf("Find(%q): expected %v, got %v", tt.ref, tt.err, err)
			}
			continue
		}
		if err != nil || got.Name != tt.want {
			t.Errorf("Find(%q) = %v, %v; want %s", tt.ref, got, err, tt.want)
		}
	}

	cur, ok := svc.Current()
	if !ok || cur.Name != "Summer" {
		t.Fatalf("expected current period Summer, got %v", cur)
	}
}

type failingPersistence struct {
	store.Memory
}

func (f *failingPersistence) Save(context.Context, []*period.Period) error {
	return errors.New("disk full")
}

func TestSaveFailureIsReturnedAndMutationKept(t *testing.T) {
	svc, _ := newTestService(t, &failingPersistence{}, june2025)
	p, err := svc.CreatePeriod(context.Background(), "Work")
	if err == nil || p == nil {
		t.Fatalf("expected period and save error, got %v, %v", p, err)
	}
	if len(svc.Periods()) != 1 {
		t.Fatalf("in-memory mutation should stand")
	}
}

func TestNilPersistence(t *testing.T) {
	svc := New(nil)
	svc.Load(context.Background())
	if _, err := svc.CreatePeriod(context.Background(), "x"); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}

func TestWatch(t *testing.T) {
	svc, _ := newTestService(t, store.NewMemory(), june2025)
	if _, err := svc.Watch(context.Background()); !errors.Is(err, ErrWatchUnsupported) {
		t.Fatalf("expected ErrWatchUnsupported, got %v", err)
	}

	d, err := store.NewDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskv: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc, _ = newTestService(t, d, june2025)
	ch, err := svc.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if _, err := svc.CreatePeriod(context.Background(), "Work"); err != nil {
		t.Fatalf("CreatePeriod: %v", err)
	}
	select {
	case ev := <-ch:
		if ev.Type != store.EventPeriodsChanged {
			t.Fatalf("unexpected event %v", ev.Type)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for change event")
	}
}

func TestResolve(t *testing.T) {
	svc, clock := newTestService(t, store.NewMemory(), june2025)
	if _, err := svc.Resolve(""); !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound, got %v", err)
	}
	created, err := svc.CreatePeriod(context.Background(), "Work")
	if err != nil {
		t.Fatalf("CreatePeriod: %v", err)
	}
	p, err := svc.Resolve(" ")
	if err != nil || p.ID != created.ID {
		t.Fatalf("expected current period, got %v, %v", p, err)
	}
	clock.now = june2025.AddDate(0, 1, 0)
	if _, err := svc.Resolve(""); !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected no period for July, got %v", err)
	}
	if p, err := svc.Resolve("work"); err != nil || p.ID != created.ID {
		t.Fatalf("expected lookup by name, got %v, %v", p, err)
	}
}

func TestConcurrentScheduleEditsKeepEveryTask(t *testing.T) {
	var n atomic.Int64
	ids := func() string { return fmt.Sprintf("id-%d", n.Add(1)) }
	mem := store.NewMemory()
	svc, _ := newTestService(t, mem, june2025, WithIDs(ids))
	ctx := context.Background()
	p, err := svc.CreatePeriod(ctx, "Work")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	const workers = 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := period.TaskInput{Name: fmt.Sprintf("task %d", i), StartTime: "09:00", EndTime: "10:00", DayOfWeek: i % 7}
			if _, ok, err := svc.AddTask(ctx, p.ID, in); !ok || err != nil {
				t.Errorf("AddTask %d: ok=%v err=%v", i, ok, err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := svc.Period(p.ID)
	if len(got.Schedule) != workers {
		t.Fatalf("expected %d tasks, got %d", workers, len(got.Schedule))
	}

	// Remove every other task concurrently; the rest must survive.
	for i, task := range got.Schedule {
		if i%2 == 1 {
			continue
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := svc.RemoveTask(ctx, p.ID, id); err != nil {
				t.Errorf("RemoveTask %s: %v", id, err)
			}
		}(task.ID)
	}
	wg.Wait()

	got, _ = svc.Period(p.ID)
	if len(got.Schedule) != workers/2 {
		t.Fatalf("expected %d tasks after removals, got %d", workers/2, len(got.Schedule))
	}
	reloaded := svc.Reload(ctx)
	if len(reloaded[0].Schedule) != workers/2 {
		t.Fatalf("stored schedule has %d tasks, want %d", len(reloaded[0].Schedule), workers/2)
	}
}

// gatedPersistence blocks Load until release is closed, once armed.
type gatedPersistence struct {
	*store.Memory
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (g *gatedPersistence) Load(ctx context.Context) ([]*period.Period, error) {
	list, err := g.Memory.Load(ctx)
	if g.armed.CompareAndSwap(true, false) {
		close(g.entered)
		<-g.release
	}
	return list, err
}

func TestReloadDoesNotDropConcurrentCreate(t *testing.T) {
	gp := &gatedPersistence{
		Memory:  store.NewMemory(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, _ := newTestService(t, gp, june2025)
	ctx := context.Background()

	gp.armed.Store(true)
	reloaded := make(chan struct{})
	go func() {
		defer close(reloaded)
		svc.Reload(ctx)
	}()
	<-gp.entered

	created := make(chan error, 1)
	go func() {
		_, err := svc.CreatePeriod(ctx, "Work")
		created <- err
	}()
	// Give CreatePeriod the chance to run while the reload holds a stale list.
	time.Sleep(20 * time.Millisecond)
	close(gp.release)

	<-reloaded
	if err := <-created; err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := svc.Periods(); len(got) != 1 {
		t.Fatalf("expected the created period to survive the reload, got %d periods", len(got))
	}
	if got := svc.Reload(ctx); len(got) != 1 {
		t.Fatalf("expected the created period in storage, got %d periods", len(got))
	}
}

// loggingWatchStore records which watch entry point the service used.
type loggingWatchStore struct {
	*store.Memory
	plain bool
}

func (l *loggingWatchStore) Watch(ctx context.Context) (<-chan store.Event, error) {
	l.plain = true
	return make(chan store.Event), nil
}

func (l *loggingWatchStore) WatchWithLogger(ctx context.Context, log *zap.SugaredLogger) (<-chan store.Event, error) {
	log.Warnw("watcher error", "error", "boom")
	return make(chan store.Event), nil
}

func TestWatchPassesServiceLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ws := &loggingWatchStore{Memory: store.NewMemory()}
	svc, _ := newTestService(t, ws, june2025, WithLogger(zap.New(core).Sugar()))

	if _, err := svc.Watch(context.Background()); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if ws.plain {
		t.Fatalf("expected WatchWithLogger, got Watch")
	}
	got := logs.FilterMessage("watcher error").All()
	if len(got) != 1 {
		t.Fatalf("expected the watcher to log through the service logger, got %d entries", len(got))
	}
	if got[0].ContextMap()["component"] != "watch" {
		t.Fatalf("unexpected fields %v", got[0].ContextMap())
	}
}

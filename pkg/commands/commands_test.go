package commands

import (
	"context"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/store"
)

func TestNewRegistersCommands(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"new"}, {"list"}, {"ls"}, {"show"}, {"delete"}, {"rm"},
		{"task", "add"}, {"task", "rm"}, {"timeline"}, {"ui"}, {"info"},
		{"version"}, {"completion"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd == root {
			t.Fatalf("command %v not registered: %v", path, err)
		}
	}
	if root.PersistentFlags().Lookup("json") == nil {
		t.Fatalf("expected persistent --json flag")
	}
}

func TestPeriodCompletions(t *testing.T) {
	june := period.New("a", "Summer", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	july := period.New("b", "Sailing", time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))

	got := periodCompletions([]*period.Period{june, july}, "s")
	if want := []string{"Summer", "Sailing"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	got = periodCompletions([]*period.Period{june, july}, "2025-0")
	if want := []string{"2025-06", "2025-07"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestEnvCloseReleasesStorage(t *testing.T) {
	p, err := store.NewSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	e := &env{Log: zap.NewNop().Sugar(), persistence: p}
	e.Close()
	if _, err := p.Load(context.Background()); err == nil {
		t.Fatalf("expected storage to be closed")
	}
}

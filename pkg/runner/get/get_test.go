package get

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/period"
	"tableflip.dev/timelined/pkg/store"
)

func TestGet(t *testing.T) {
	color.NoColor = true
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	svc := app.Open(context.Background(), store.NewMemory(), app.WithClock(func() time.Time { return now }))

	var buf bytes.Buffer
	g := Get{Service: svc, Out: &buf}
	if err := g.Do(context.Background()); !errors.Is(err, app.ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound, got %v", err)
	}

	if _, err := svc.CreatePeriod(context.Background(), "Summer"); err != nil {
		t.Fatalf("CreatePeriod: %v", err)
	}

	buf.Reset()
	if err := g.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "Summer (June 2025)") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	g = Get{All: true, JSON: true, Service: svc, Out: &buf}
	if err := g.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var got []period.Period
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 1 || got[0].Name != "Summer" || got[0].Month != 5 || got[0].Year != 2025 {
		t.Fatalf("unexpected periods %+v", got)
	}
}

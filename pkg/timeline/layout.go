// Package timeline places periods on a horizontal strip covering the previous,
// current and next calendar year, one fixed-width slot per month.
package timeline

import (
	"strconv"
	"time"

	"tableflip.dev/timelined/pkg/period"
)

const (
	// DefaultUnitWidth is the width of one month slot in pixels.
	DefaultUnitWidth = 128
	// DefaultSensitivity multiplies drag distance into scroll distance.
	DefaultSensitivity = 2
	// WindowYears is the number of calendar years on the strip.
	WindowYears = 3
	// Slots is the number of month slots on the strip.
	Slots = WindowYears * 12
)

var monthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Years returns the visible window for now: previous, current and next year.
// It is recomputed on every render, so the window moves at New Year.
func Years(now time.Time) [WindowYears]int {
	y := now.Year()
	return [WindowYears]int{y - 1, y, y + 1}
}

// Engine maps periods to positions. The zero value is not usable; see Default.
type Engine struct {
	// UnitWidth is the width of one month slot, in whatever unit the caller
	// renders (pixels, terminal columns).
	UnitWidth int
	// Sensitivity multiplies drag distance into scroll distance.
	Sensitivity int
}

// Default returns the engine with the pixel geometry of the web layout.
func Default() Engine {
	return Engine{UnitWidth: DefaultUnitWidth, Sensitivity: DefaultSensitivity}
}

// Marker is a period placed on the strip.
type Marker struct {
	Period        *period.Period
	YearIndex     int
	MonthPosition int
	// Position is the center of the period's month slot.
	Position int
}

// Slot is one month cell of the strip.
type Slot struct {
	Year  int
	Month int
	Label string
	// YearLabel is set on January slots only.
	YearLabel string
	Start     int
	Current   bool
}

// Width is the total width of the strip.
func (e Engine) Width() int {
	return Slots * e.UnitWidth
}

// Place computes p's marker. ok is false when p's year is outside the window;
// such periods are simply not drawn.
func (e Engine) Place(p *period.Period, now time.Time) (Marker, bool) {
	if p == nil || p.Month < 0 || p.Month > 11 {
		return Marker{}, false
	}
	yearIndex := -1
	for i, y := range Years(now) {
		if y == p.Year {
			yearIndex = i
			break
		}
	}
	if yearIndex < 0 {
		return Marker{}, false
	}
	monthPosition := yearIndex*12 + p.Month
	return Marker{
		Period:        p,
		YearIndex:     yearIndex,
		MonthPosition: monthPosition,
		Position:      monthPosition*e.UnitWidth + e.UnitWidth/2,
	}, true
}

// Layout places every in-window period, keeping input order.
func (e Engine) Layout(periods []*period.Period, now time.Time) []Marker {
	markers := make([]Marker, 0, len(periods))
	for _, p := range periods {
		if m, ok := e.Place(p, now); ok {
			markers = append(markers, m)
		}
	}
	return markers
}

// Slots returns the month cells of the strip for now.
func (e Engine) Slots(now time.Time) []Slot {
	current := period.KeyOf(now)
	slots := make([]Slot, 0, Slots)
	for yi, y := range Years(now) {
		for m := 0; m < 12; m++ {
			s := Slot{
				Year:    y,
				Month:   m,
				Label:   monthAbbr[m],
				Start:   (yi*12 + m) * e.UnitWidth,
				Current: current.Year == y && current.Month == m,
			}
			if m == 0 {
				s.YearLabel = strconv.Itoa(y)
			}
			slots = append(slots, s)
		}
	}
	return slots
}

// Hit returns the marker whose month slot contains x.
func (e Engine) Hit(markers []Marker, x int) (Marker, bool) {
	if x < 0 || e.UnitWidth <= 0 {
		return Marker{}, false
	}
	slot := x / e.UnitWidth
	for _, m := range markers {
		if m.MonthPosition == slot {
			return m, true
		}
	}
	return Marker{}, false
}

// ScrollTo returns the scroll offset centering position in a viewport of the
// given width, clamped to the strip.
func (e Engine) ScrollTo(position, viewport int) int {
	return e.ClampScroll(position-viewport/2, viewport)
}

// ClampScroll keeps scroll within [0, Width()-viewport].
func (e Engine) ClampScroll(scroll, viewport int) int {
	maxScroll := e.Width() - viewport
	if maxScroll < 0 {
		maxScroll = 0
	}
	switch {
	case scroll < 0:
		return 0
	case scroll > maxScroll:
		return maxScroll
	default:
		return scroll
	}
}

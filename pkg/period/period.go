// Package period defines the timeline's data model: periods scoped to one
// calendar month and the weekly recurring tasks they own.
package period

import (
	"fmt"
	"strings"
	"time"
)

// Period is a named scheduling context for exactly one calendar month.
type Period struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Month     int       `json:"month"` // 0 = January
	Year      int       `json:"year"`
	CreatedAt Timestamp `json:"createdAt"`
	Schedule  []Task    `json:"schedule"`
}

// Task is a time-boxed activity recurring on one day of the week.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	DayOfWeek int    `json:"dayOfWeek"` // 0 = Sunday
}

// Key identifies the calendar month a period occupies.
type Key struct {
	Month int
	Year  int
}

func (k Key) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month+1)
}

// KeyOf returns the calendar month of t in the period numbering (0 = January).
func KeyOf(t time.Time) Key {
	return Key{Month: int(t.Month()) - 1, Year: t.Year()}
}

// ParseKey parses a "YYYY-MM" reference.
func ParseKey(s string) (Key, bool) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Key{}, false
	}
	return KeyOf(t), true
}

// New builds a period for the month of now with an empty schedule.
func New(id, name string, now time.Time) *Period {
	k := KeyOf(now)
	return &Period{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Month:     k.Month,
		Year:      k.Year,
		CreatedAt: Timestamp{Time: now},
		Schedule:  []Task{},
	}
}

// Key returns the calendar month of the period.
func (p *Period) Key() Key {
	return Key{Month: p.Month, Year: p.Year}
}

// MonthLabel renders the occupied month, "June 2025".
func (p *Period) MonthLabel() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month+1).String(), p.Year)
}

// CreatedLabel renders the creation date as "January 2025".
func (p *Period) CreatedLabel() string {
	if p.CreatedAt.IsZero() {
		return ""
	}
	return p.CreatedAt.Local().Format("January 2006")
}

// Task looks up a task of the schedule by id.
func (p *Period) Task(id string) (Task, bool) {
	for _, t := range p.Schedule {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Clone returns a deep copy; callers outside the store only ever see clones.
func (p *Period) Clone() *Period {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Schedule = CloneTasks(p.Schedule)
	return &cp
}

// CloneTasks copies a schedule, never returning nil.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

package period

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultDay is the weekday preselected for new tasks.
const DefaultDay = int(time.Monday)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeekdayName returns "Sunday".."Saturday" for 0..6.
func WeekdayName(day int) string {
	if day < 0 || day > 6 {
		return fmt.Sprintf("Day(%d)", day)
	}
	return dayNames[day]
}

// ParseWeekday accepts 0-6, full English day names and their three letter
// abbreviations, case-insensitively.
func ParseWeekday(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, false
		}
		return n, true
	}
	for i, name := range dayNames {
		full := strings.ToLower(name)
		if s == full || s == full[:3] {
			return i, true
		}
	}
	return 0, false
}

// NormalizeClock validates a 24-hour "H:MM" or "HH:MM" time of day and returns
// it zero padded. Sorting by start time compares these strings directly, so
// everything stored goes through here first.
func NormalizeClock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	hh, mm, found := strings.Cut(s, ":")
	if !found || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return "", false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return "", false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

// FormatClock renders "13:05" as "1:05 PM". Unparseable input is returned as is.
func FormatClock(s string) string {
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return s
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return s
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, mm, ampm)
}

// FormatSpan renders a task's time range for display.
func (t Task) FormatSpan() string {
	return FormatClock(t.StartTime) + " - " + FormatClock(t.EndTime)
}

// TaskInput is the raw form of a new task as typed by the user.
type TaskInput struct {
	Name      string
	StartTime string
	EndTime   string
	DayOfWeek int
}

// Task validates the input and builds a task with the given id. ok is false when
// the name is blank, a time is missing or malformed, or the day is out of range;
// input boundaries skip the add in that case rather than reporting an error.
// End before start is accepted.
func (in TaskInput) Task(id string) (Task, bool) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Task{}, false
	}
	start, ok := NormalizeClock(in.StartTime)
	if !ok {
		return Task{}, false
	}
	end, ok := NormalizeClock(in.EndTime)
	if !ok {
		return Task{}, false
	}
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return Task{}, false
	}
	return Task{
		ID:        id,
		Name:      name,
		StartTime: start,
		EndTime:   end,
		DayOfWeek: in.DayOfWeek,
	}, true
}

// DayGroup holds the tasks of one weekday, ordered by start time.
type DayGroup struct {
	Day   int
	Tasks []Task
}

// Name returns the weekday name of the group.
func (g DayGroup) Name() string {
	return WeekdayName(g.Day)
}

// GroupByDay partitions tasks by weekday, Sunday first. Days without tasks are
// omitted and tasks keep their relative order when start times tie.
func GroupByDay(tasks []Task) []DayGroup {
	var byDay [7][]Task
	for _, t := range tasks {
		if t.DayOfWeek < 0 || t.DayOfWeek > 6 {
			continue
		}
		byDay[t.DayOfWeek] = append(byDay[t.DayOfWeek], t)
	}

	groups := make([]DayGroup, 0, 7)
	for day, list := range byDay {
		if len(list) == 0 {
			continue
		}
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].StartTime < list[j].StartTime
		})
		groups = append(groups, DayGroup{Day: day, Tasks: list})
	}
	return groups
}

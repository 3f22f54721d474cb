package period

import (
	"testing"
)

func TestGroupByDaySortsByStartTime(t *testing.T) {
	tasks := []Task{
		{ID: "a", Name: "Standup", StartTime: "09:00", EndTime: "09:15", DayOfWeek: 1},
		{ID: "b", Name: "Gym", StartTime: "08:30", EndTime: "09:00", DayOfWeek: 1},
		{ID: "c", Name: "Lunch", StartTime: "13:15", EndTime: "14:00", DayOfWeek: 1},
	}

	groups := GroupByDay(tasks)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Day != 1 || groups[0].Name() != "Monday" {
		t.Fatalf("expected Monday group, got %d (%s)", groups[0].Day, groups[0].Name())
	}
	want := []string{"08:30", "09:00", "13:15"}
	for i, task := range groups[0].Tasks {
		if task.StartTime != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], task.StartTime)
		}
	}
	if tasks[0].ID != "a" {
		t.Fatalf("grouping must not reorder the input slice")
	}
}

func TestGroupByDayOmitsEmptyDaysAndOrdersSundayFirst(t *testing.T) {
	tasks := []Task{
		{ID: "sat", StartTime: "10:00", DayOfWeek: 6},
		{ID: "sun", StartTime: "10:00", DayOfWeek: 0},
		{ID: "wed", StartTime: "10:00", DayOfWeek: 3},
	}
	groups := GroupByDay(tasks)
	var days []int
	for _, g := range groups {
		days = append(days, g.Day)
	}
	if len(days) != 3 || days[0] != 0 || days[1] != 3 || days[2] != 6 {
		t.Fatalf("unexpected day order %v", days)
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if groups := GroupByDay(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestGroupByDayStableOnEqualStart(t *testing.T) {
	tasks := []Task{
		{ID: "first", StartTime: "09:00", DayOfWeek: 2},
		{ID: "second", StartTime: "09:00", DayOfWeek: 2},
	}
	groups := GroupByDay(tasks)
	if groups[0].Tasks[0].ID != "first" || groups[0].Tasks[1].ID != "second" {
		t.Fatalf("expected insertion order for ties, got %v", groups[0].Tasks)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[string]string{
		"00:00": "12:00 AM",
		"00:30": "12:30 AM",
		"09:05": "9:05 AM",
		"12:00": "12:00 PM",
		"13:15": "1:15 PM",
		"23:59": "11:59 PM",
		"noon":  "noon",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "09:00", want: "09:00", ok: true},
		{in: "9:00", want: "09:00", ok: true},
		{in: " 23:45 ", want: "23:45", ok: true},
		{in: "24:00"},
		{in: "12:60"},
		{in: "12:5"},
		{in: "1200"},
		{in: ""},
		{in: "ab:cd"},
	}
	for _, tt := range tests {
		got, ok := NormalizeClock(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NormalizeClock(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{in: "0", want: 0, ok: true},
		{in: "6", want: 6, ok: true},
		{in: "7"},
		{in: "-1"},
		{in: "Monday", want: 1, ok: true},
		{in: "tue", want: 2, ok: true},
		{in: "SAT", want: 6, ok: true},
		{in: "someday"},
		{in: ""},
	}
	for _, tt := range tests {
		got, ok := ParseWeekday(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseWeekday(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTaskInputValidation(t *testing.T) {
	valid := TaskInput{Name: "  Run  ", StartTime: "7:00", EndTime: "08:00", DayOfWeek: DefaultDay}
	task, ok := valid.Task("t1")
	if !ok {
		t.Fatalf("expected valid input")
	}
	if task.Name != "Run" || task.StartTime != "07:00" || task.EndTime != "08:00" || task.DayOfWeek != 1 || task.ID != "t1" {
		t.Fatalf("unexpected task %+v", task)
	}

	backwards := TaskInput{Name: "Night shift", StartTime: "22:00", EndTime: "06:00", DayOfWeek: 5}
	if _, ok := backwards.Task("t2"); !ok {
		t.Fatalf("end before start must be accepted")
	}

	invalid := []TaskInput{
		{Name: " ", StartTime: "07:00", EndTime: "08:00"},
		{Name: "Run", StartTime: "", EndTime: "08:00"},
		{Name: "Run", StartTime: "07:00", EndTime: ""},
		{Name: "Run", StartTime: "07:00", EndTime: "08:00", DayOfWeek: 7},
	}
	for i, in := range invalid {
		if _, ok := in.Task("x"); ok {
			t.Errorf("case %d: expected input to be rejected: %+v", i, in)
		}
	}
}

func TestTaskFormatSpan(t *testing.T) {
	task := Task{StartTime: "08:30", EndTime: "17:00"}
	if got := task.FormatSpan(); got != "8:30 AM - 5:00 PM" {
		t.Fatalf("unexpected span %q", got)
	}
}

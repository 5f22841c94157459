package engine

import (
	"testing"
	"time"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return loc
}

func TestDayKeyTimezoneBoundary(t *testing.T) {
	tokyo := mustZone(t, "Asia/Tokyo")
	la := mustZone(t, "America/Los_Angeles")

	// 2024-01-01T23:30Z is already Jan 2 in Tokyo and still Jan 1 in LA.
	at := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)

	if got := DayKey(at, tokyo); got != "2024-01-02" {
		t.Errorf("tokyo key = %s, want 2024-01-02", got)
	}
	if got := DayKey(at, la); got != "2024-01-01" {
		t.Errorf("la key = %s, want 2024-01-01", got)
	}
	if got := DayKey(at, nil); got != "2024-01-01" {
		t.Errorf("nil loc should fall back to UTC, got %s", got)
	}
}

func TestDayKeyDSTTransition(t *testing.T) {
	ny := mustZone(t, "America/New_York")

	// US spring forward 2024-03-10: the local day is 23 hours long. Instants
	// before and after the jump must still share a day key.
	before := time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC)  // 01:30 EST
	after := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)   // 08:00 EDT
	nextDay := time.Date(2024, 3, 11, 5, 0, 0, 0, time.UTC)  // 01:00 EDT Mar 11

	if DayKey(before, ny) != DayKey(after, ny) {
		t.Errorf("instants on the same 23h local day got different keys: %s vs %s",
			DayKey(before, ny), DayKey(after, ny))
	}
	if gap := DayNumber(DayKey(nextDay, ny)) - DayNumber(DayKey(after, ny)); gap != 1 {
		t.Errorf("gap across DST day = %d, want 1", gap)
	}
}

func TestDayNumberAndAddDays(t *testing.T) {
	if got := DayNumber("1970-01-01"); got != 0 {
		t.Errorf("epoch day number = %d, want 0", got)
	}
	if got := DayNumber("1970-01-03") - DayNumber("1970-01-01"); got != 2 {
		t.Errorf("gap = %d, want 2", got)
	}
	if got := AddDays("2024-02-28", 1); got != "2024-02-29" {
		t.Errorf("leap day add = %s, want 2024-02-29", got)
	}
	if got := AddDays("2024-12-31", 1); got != "2025-01-01" {
		t.Errorf("year rollover = %s, want 2025-01-01", got)
	}
	if got := DayNumber("garbage"); got != 0 {
		t.Errorf("malformed key should map to 0, got %d", got)
	}
}

func TestWeekStartIsSunday(t *testing.T) {
	// 2024-01-03 is a Wednesday; the containing week starts Sunday 2023-12-31.
	at := time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC)
	ws := WeekStart(at, time.UTC)
	if ws.Weekday() != time.Sunday {
		t.Fatalf("week start weekday = %s, want Sunday", ws.Weekday())
	}
	if got := DayKey(ws, time.UTC); got != "2023-12-31" {
		t.Errorf("week start = %s, want 2023-12-31", got)
	}

	// A Sunday is its own week start.
	sun := time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)
	if got := DayKey(WeekStart(sun, time.UTC), time.UTC); got != "2024-01-07" {
		t.Errorf("sunday week start = %s, want 2024-01-07", got)
	}
}

func TestInWeek(t *testing.T) {
	ws := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want bool
	}{
		{ws, true},
		{ws.AddDate(0, 0, 6).Add(23 * time.Hour), true},
		{ws.AddDate(0, 0, 7), false},
		{ws.Add(-time.Second), false},
	}
	for i, c := range cases {
		if got := InWeek(c.at, ws); got != c.want {
			t.Errorf("case %d: InWeek(%s) = %v, want %v", i, c.at, got, c.want)
		}
	}
}

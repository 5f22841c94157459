package engine

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestCalculateStreakThreeConsecutiveDays(t *testing.T) {
	checkIns := []time.Time{
		day(2024, 1, 1, 9),
		day(2024, 1, 2, 20),
		day(2024, 1, 3, 7),
	}
	now := day(2024, 1, 3, 12)

	res := CalculateStreak(checkIns, time.UTC, now)
	if res.CurrentStreak != 3 || res.LongestStreak != 3 {
		t.Errorf("got current=%d longest=%d, want 3/3", res.CurrentStreak, res.LongestStreak)
	}
	if res.LastCheckInDate != "2024-01-03" {
		t.Errorf("last date = %s, want 2024-01-03", res.LastCheckInDate)
	}
	if !HasCheckedInToday(checkIns, time.UTC, now) {
		t.Error("HasCheckedInToday = false, want true")
	}
}

func TestCalculateStreakBroken(t *testing.T) {
	checkIns := []time.Time{day(2024, 1, 1, 10)}
	now := day(2024, 1, 5, 10)

	res := CalculateStreak(checkIns, time.UTC, now)
	if res.CurrentStreak != 0 {
		t.Errorf("current = %d, want 0 for a 4-day-old check-in", res.CurrentStreak)
	}
	if res.LongestStreak != 1 {
		t.Errorf("longest = %d, want 1", res.LongestStreak)
	}
}

func TestCalculateStreakYesterdayGrace(t *testing.T) {
	// A check-in made yesterday with none today still counts as an active
	// streak. Product decision: the user has until end of today to keep it.
	checkIns := []time.Time{day(2024, 1, 1, 8), day(2024, 1, 2, 8)}
	now := day(2024, 1, 3, 9)

	res := CalculateStreak(checkIns, time.UTC, now)
	if res.CurrentStreak != 2 {
		t.Errorf("current = %d, want 2 (yesterday grace)", res.CurrentStreak)
	}
	if HasCheckedInToday(checkIns, time.UTC, now) {
		t.Error("HasCheckedInToday = true, want false")
	}
}

func TestCalculateStreakSameDayCountsOnce(t *testing.T) {
	checkIns := []time.Time{
		day(2024, 1, 2, 8),
		day(2024, 1, 2, 12),
		day(2024, 1, 2, 22),
		day(2024, 1, 3, 8),
	}
	now := day(2024, 1, 3, 12)

	res := CalculateStreak(checkIns, time.UTC, now)
	if res.CurrentStreak != 2 || res.LongestStreak != 2 {
		t.Errorf("got %d/%d, want 2/2: same-day check-ins must collapse", res.CurrentStreak, res.LongestStreak)
	}
}

func TestCalculateStreakLongestRunInHistory(t *testing.T) {
	// A 4-day run in the past, then a gap, then 2 recent days.
	checkIns := []time.Time{
		day(2024, 1, 1, 8), day(2024, 1, 2, 8), day(2024, 1, 3, 8), day(2024, 1, 4, 8),
		day(2024, 1, 10, 8), day(2024, 1, 11, 8),
	}
	now := day(2024, 1, 11, 20)

	res := CalculateStreak(checkIns, time.UTC, now)
	if res.CurrentStreak != 2 {
		t.Errorf("current = %d, want 2", res.CurrentStreak)
	}
	if res.LongestStreak != 4 {
		t.Errorf("longest = %d, want 4", res.LongestStreak)
	}
}

func TestCalculateStreakEmpty(t *testing.T) {
	res := CalculateStreak(nil, time.UTC, day(2024, 1, 1, 0))
	if res.CurrentStreak != 0 || res.LongestStreak != 0 || res.LastCheckInDate != "" {
		t.Errorf("empty history should yield zero result, got %+v", res)
	}
}

func TestCalculateStreakTimezoneBuckets(t *testing.T) {
	tokyo := mustZone(t, "Asia/Tokyo")

	// Two instants 2h apart straddle UTC midnight but land on the same Tokyo
	// day; a third lands on the next Tokyo day.
	checkIns := []time.Time{
		time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), // Jan 2 08:00 JST
		time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC),  // Jan 2 10:00 JST
		time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC), // Jan 3 08:00 JST
	}
	now := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC) // Jan 3 09:00 JST

	res := CalculateStreak(checkIns, tokyo, now)
	if res.CurrentStreak != 2 || res.LongestStreak != 2 {
		t.Errorf("got %d/%d, want 2/2 when bucketed in JST", res.CurrentStreak, res.LongestStreak)
	}
}

func TestUpdateStreakOnCheckIn(t *testing.T) {
	cases := []struct {
		name        string
		current     int
		longest     int
		lastDate    string
		at          time.Time
		protected   bool
		wantCurrent int
		wantLongest int
		wantDate    string
	}{
		{"first ever", 0, 0, "", day(2024, 1, 1, 9), false, 1, 1, "2024-01-01"},
		{"first with prior longest", 0, 9, "", day(2024, 1, 1, 9), false, 1, 9, "2024-01-01"},
		{"same day no-op", 4, 6, "2024-01-05", day(2024, 1, 5, 22), false, 4, 6, "2024-01-05"},
		{"consecutive day", 4, 6, "2024-01-05", day(2024, 1, 6, 8), false, 5, 6, "2024-01-06"},
		{"consecutive grows longest", 6, 6, "2024-01-05", day(2024, 1, 6, 8), false, 7, 7, "2024-01-06"},
		{"two day gap protected", 5, 8, "2024-01-05", day(2024, 1, 7, 8), true, 6, 8, "2024-01-07"},
		{"two day gap unprotected", 5, 8, "2024-01-05", day(2024, 1, 7, 8), false, 1, 8, "2024-01-07"},
		{"three day gap even protected", 5, 8, "2024-01-05", day(2024, 1, 8, 8), true, 1, 8, "2024-01-08"},
		{"long gap preserves longest", 12, 12, "2024-01-01", day(2024, 3, 1, 8), false, 1, 12, "2024-03-01"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := UpdateStreakOnCheckIn(c.current, c.longest, c.lastDate, c.at, c.protected, time.UTC)
			if res.CurrentStreak != c.wantCurrent {
				t.Errorf("current = %d, want %d", res.CurrentStreak, c.wantCurrent)
			}
			if res.LongestStreak != c.wantLongest {
				t.Errorf("longest = %d, want %d", res.LongestStreak, c.wantLongest)
			}
			if res.LastCheckInDate != c.wantDate {
				t.Errorf("last date = %s, want %s", res.LastCheckInDate, c.wantDate)
			}
		})
	}
}

func TestUpdateStreakLongestNeverBelowCurrent(t *testing.T) {
	// Feed an arbitrary mix of gaps through the incremental update and assert
	// the invariant longest >= current after every step.
	current, longest, lastDate := 0, 0, ""
	at := day(2024, 1, 1, 9)
	gaps := []int{1, 1, 1, 0, 1, 3, 1, 1, 2, 1, 1, 1, 1, 1, 1, 5, 1}

	for i, g := range gaps {
		at = at.AddDate(0, 0, g)
		res := UpdateStreakOnCheckIn(current, longest, lastDate, at, false, time.UTC)
		if res.LongestStreak < res.CurrentStreak {
			t.Fatalf("step %d: longest %d < current %d", i, res.LongestStreak, res.CurrentStreak)
		}
		if res.LongestStreak < longest {
			t.Fatalf("step %d: longest shrank from %d to %d", i, longest, res.LongestStreak)
		}
		current, longest, lastDate = res.CurrentStreak, res.LongestStreak, res.LastCheckInDate
	}
}

func TestUpdateStreakBackdatedCheckIn(t *testing.T) {
	// An instant earlier than the stored day must leave a live streak alone:
	// the counters hold and the date never moves backwards.
	res := UpdateStreakOnCheckIn(10, 10, "2024-01-10", day(2024, 1, 8, 9), false, time.UTC)
	if res.CurrentStreak != 10 || res.LongestStreak != 10 {
		t.Errorf("got current=%d longest=%d, want 10/10 untouched", res.CurrentStreak, res.LongestStreak)
	}
	if res.LastCheckInDate != "2024-01-10" {
		t.Errorf("last date = %s, want 2024-01-10 (must not rewind)", res.LastCheckInDate)
	}
}

func TestSameDayIdempotence(t *testing.T) {
	// Two check-ins on one day must end with the same counters as one.
	once := UpdateStreakOnCheckIn(3, 5, "2024-01-09", day(2024, 1, 10, 8), false, time.UTC)
	twice := UpdateStreakOnCheckIn(once.CurrentStreak, once.LongestStreak, once.LastCheckInDate,
		day(2024, 1, 10, 21), false, time.UTC)

	if twice.CurrentStreak != once.CurrentStreak || twice.LongestStreak != once.LongestStreak {
		t.Errorf("second same-day check-in changed counters: %+v vs %+v", twice, once)
	}
}

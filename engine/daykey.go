// Package engine holds the streak, freeze, badge, and insights computations.
// Everything here is pure: rows come in as slices and values, results go out
// as values. Persistence stays in the controller layer so each request reads
// a consistent snapshot and writes its own delta.
package engine

import (
	"time"
)

// dayKeyLayout is the canonical calendar-day key format.
const dayKeyLayout = "2006-01-02"

// DayKey converts an instant to a calendar-day key in the given timezone.
// Two instants share a key iff they fall on the same local calendar day, so
// DST transitions are handled by the location itself rather than by offset
// arithmetic.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dayKeyLayout)
}

// ParseDayKey returns the UTC midnight for a day key. An empty or malformed
// key yields the zero time.
func ParseDayKey(key string) time.Time {
	t, err := time.ParseInLocation(dayKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DayNumber maps a day key to a serial day count (days since the Unix epoch
// of that calendar day). Gap math between two keys is plain subtraction on
// these numbers, with no timezone involvement.
func DayNumber(key string) int {
	t := ParseDayKey(key)
	if t.IsZero() {
		return 0
	}
	return int(t.Unix() / 86400)
}

// AddDays shifts a day key by n calendar days.
func AddDays(key string, n int) string {
	t := ParseDayKey(key)
	if t.IsZero() {
		return ""
	}
	return t.AddDate(0, 0, n).Format(dayKeyLayout)
}

// WeekStart returns local midnight of the Sunday beginning the week that
// contains t. Weeks start on Sunday by convention.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	midnight := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// InWeek reports whether t falls inside [weekStart, weekStart+7d).
func InWeek(t, weekStart time.Time) bool {
	end := weekStart.AddDate(0, 0, 7)
	return !t.Before(weekStart) && t.Before(end)
}

package engine

import (
	"sort"
	"time"
)

// StreakResult carries the derived streak fields for a habit goal.
// LastCheckInDate is a day key, empty when there is no history.
type StreakResult struct {
	CurrentStreak   int    `json:"current_streak"`
	LongestStreak   int    `json:"longest_streak"`
	LastCheckInDate string `json:"last_check_in_date"`
}

// uniqueDaysDesc buckets instants into unique day keys for loc, sorted
// descending. Multiple check-ins on one local day collapse to a single entry.
func uniqueDaysDesc(times []time.Time, loc *time.Location) []string {
	seen := make(map[string]struct{}, len(times))
	for _, t := range times {
		seen[DayKey(t, loc)] = struct{}{}
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}

// CalculateStreak derives current/longest streak from full check-in history.
// The current streak is alive when the most recent check-in day is today or
// yesterday; a check-in made yesterday with none yet today still counts as an
// active streak. That one-day grace is a deliberate product choice, not
// leniency in the math.
func CalculateStreak(times []time.Time, loc *time.Location, now time.Time) StreakResult {
	days := uniqueDaysDesc(times, loc)
	if len(days) == 0 {
		return StreakResult{}
	}

	res := StreakResult{LastCheckInDate: days[0]}
	today := DayNumber(DayKey(now, loc))
	nums := make([]int, len(days))
	for i, d := range days {
		nums[i] = DayNumber(d)
	}

	// Current streak: walk backward from today or yesterday, whichever has a
	// check-in, counting consecutive days.
	if nums[0] == today || nums[0] == today-1 {
		res.CurrentStreak = 1
		for i := 1; i < len(nums); i++ {
			if nums[i-1]-nums[i] != 1 {
				break
			}
			res.CurrentStreak++
		}
	}

	// Longest streak: maximal run of consecutive days anywhere in history.
	longest, run := 1, 1
	for i := 1; i < len(nums); i++ {
		if nums[i-1]-nums[i] == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	if res.CurrentStreak > longest {
		longest = res.CurrentStreak
	}
	res.LongestStreak = longest

	return res
}

// HasCheckedInToday reports whether any check-in falls on today's local day.
func HasCheckedInToday(times []time.Time, loc *time.Location, now time.Time) bool {
	today := DayKey(now, loc)
	for _, t := range times {
		if DayKey(t, loc) == today {
			return true
		}
	}
	return false
}

// UpdateStreakOnCheckIn applies the incremental streak transition for one
// accepted check-in. lastDate is the goal's stored day key ("" for the first
// check-in ever). A 2-day gap extends the streak only when freezeProtected is
// set, meaning the caller verified an activated freeze covered the skipped
// day. LongestStreak only ever grows through this function's own max
// tracking; it is never recomputed from history here.
func UpdateStreakOnCheckIn(current, longest int, lastDate string, at time.Time, freezeProtected bool, loc *time.Location) StreakResult {
	day := DayKey(at, loc)
	res := StreakResult{CurrentStreak: current, LongestStreak: longest, LastCheckInDate: day}

	switch {
	case lastDate == "":
		res.CurrentStreak = 1
	default:
		gap := DayNumber(day) - DayNumber(lastDate)
		switch {
		case gap <= 0:
			// Same local day, or a backdated instant: counters untouched and
			// the stored date never moves backwards.
			res.LastCheckInDate = lastDate
			return res
		case gap == 1:
			res.CurrentStreak = current + 1
		case gap == 2 && freezeProtected:
			// The missed day was covered by a freeze: treat as consecutive.
			res.CurrentStreak = current + 1
		default:
			res.CurrentStreak = 1
		}
	}

	if res.CurrentStreak > res.LongestStreak {
		res.LongestStreak = res.CurrentStreak
	}
	return res
}

package engine

import (
	"math"
	"sort"
	"time"
)

// CheckInPoint is the slim check-in projection insights work on.
type CheckInPoint struct {
	GoalID     uint
	Category   string
	OccurredAt time.Time
	Value      int
}

// GoalSnapshot is the slim goal projection insights work on.
type GoalSnapshot struct {
	ID            uint
	Title         string
	Category      string
	Type          string
	CurrentStreak int
	Archived      bool
	CompletedAt   *time.Time
}

// GoalInsights are per-goal analytics derived from full check-in history.
type GoalInsights struct {
	TotalCheckIns       int     `json:"total_check_ins"`
	AveragePerWeek      float64 `json:"average_per_week"`
	BestDayOfWeek       string  `json:"best_day_of_week,omitempty"`
	EstimatedCompletion string  `json:"estimated_completion,omitempty"`
	ConsistencyScore    int     `json:"consistency_score"`
}

// GoalHighlight names the standout goal on the dashboard.
type GoalHighlight struct {
	GoalID           uint   `json:"goal_id"`
	Title            string `json:"title"`
	CurrentStreak    int    `json:"current_streak"`
	CheckInsThisWeek int    `json:"check_ins_this_week"`
}

// DashboardInsights are cross-goal analytics for the current week.
type DashboardInsights struct {
	TotalCheckInsThisWeek int            `json:"total_check_ins_this_week"`
	TotalCheckInsLastWeek int            `json:"total_check_ins_last_week"`
	WeekOverWeekTrend     int            `json:"week_over_week_trend"`
	MostConsistentGoal    *GoalHighlight `json:"most_consistent_goal,omitempty"`
	BestCategory          string         `json:"best_category,omitempty"`
	BestDayOfWeek         string         `json:"best_day_of_week,omitempty"`
}

// GoalBreakdown is one row of the weekly per-goal digest.
type GoalBreakdown struct {
	GoalID   uint   `json:"goal_id"`
	Title    string `json:"title"`
	CheckIns int    `json:"check_ins"`
}

// WeeklySummary aggregates one [weekStart, weekStart+7) window.
type WeeklySummary struct {
	WeekStart      string          `json:"week_start"`
	WeekEnd        string          `json:"week_end"`
	TotalCheckIns  int             `json:"total_check_ins"`
	GoalsCompleted int             `json:"goals_completed"`
	TopStreak      int             `json:"top_streak"`
	MostActiveGoal string          `json:"most_active_goal,omitempty"`
	Breakdown      []GoalBreakdown `json:"breakdown"`
	BadgesEarned   []string        `json:"badges_earned"`
}

// ComputeGoalInsights derives the per-goal analytics. remaining is
// targetValue-currentValue for target goals and 0 otherwise; only a positive
// remaining with a nonzero pace yields an estimated completion day.
func ComputeGoalInsights(times []time.Time, remaining int, loc *time.Location, now time.Time) GoalInsights {
	ins := GoalInsights{TotalCheckIns: len(times)}
	if len(times) == 0 {
		return ins
	}

	days := uniqueDaysDesc(times, loc)
	first := DayNumber(days[len(days)-1])
	last := DayNumber(days[0])

	weeks := float64(last-first) / 7
	if weeks < 1 {
		weeks = 1
	}
	ins.AveragePerWeek = math.Round(float64(len(times))/weeks*10) / 10

	ins.BestDayOfWeek = bestWeekday(times, loc)

	if remaining > 0 && ins.AveragePerWeek > 0 {
		perDay := ins.AveragePerWeek / 7
		daysLeft := int(math.Ceil(float64(remaining) / perDay))
		ins.EstimatedCompletion = DayKey(now.AddDate(0, 0, daysLeft), loc)
	}

	today := DayNumber(DayKey(now, loc))
	active := 0
	for _, d := range days {
		n := DayNumber(d)
		if n > today-30 && n <= today {
			active++
		}
	}
	ins.ConsistencyScore = int(math.Round(float64(active) / 30 * 100))

	return ins
}

// bestWeekday returns the weekday name with the most check-ins; on ties the
// earlier weekday index (Sunday first) wins. Empty input yields "".
func bestWeekday(times []time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	var counts [7]int
	for _, t := range times {
		counts[int(t.In(loc).Weekday())]++
	}
	best, bestCount := -1, 0
	for i, c := range counts {
		if c > bestCount {
			best, bestCount = i, c
		}
	}
	if best < 0 {
		return ""
	}
	return time.Weekday(best).String()
}

// ComputeDashboardInsights derives the cross-goal dashboard view. A prior
// week of zero with a nonzero current week reports +100 so the trend never
// divides by zero.
func ComputeDashboardInsights(points []CheckInPoint, goals []GoalSnapshot, loc *time.Location, now time.Time) DashboardInsights {
	thisStart := WeekStart(now, loc)
	lastStart := thisStart.AddDate(0, 0, -7)

	var out DashboardInsights
	var thisWeek []time.Time
	perGoalThisWeek := make(map[uint]int)
	catCounts := make(map[string]int)
	var catOrder []string

	for _, p := range points {
		switch {
		case InWeek(p.OccurredAt, thisStart):
			out.TotalCheckInsThisWeek++
			thisWeek = append(thisWeek, p.OccurredAt)
			perGoalThisWeek[p.GoalID]++
			if p.Category != "" {
				if _, ok := catCounts[p.Category]; !ok {
					catOrder = append(catOrder, p.Category)
				}
				catCounts[p.Category]++
			}
		case InWeek(p.OccurredAt, lastStart):
			out.TotalCheckInsLastWeek++
		}
	}

	switch {
	case out.TotalCheckInsLastWeek == 0 && out.TotalCheckInsThisWeek > 0:
		out.WeekOverWeekTrend = 100
	case out.TotalCheckInsLastWeek > 0:
		diff := float64(out.TotalCheckInsThisWeek-out.TotalCheckInsLastWeek) / float64(out.TotalCheckInsLastWeek)
		out.WeekOverWeekTrend = int(math.Round(diff * 100))
	}

	for _, g := range goals {
		if g.Type != "habit" || g.Archived {
			continue
		}
		if out.MostConsistentGoal == nil || g.CurrentStreak > out.MostConsistentGoal.CurrentStreak {
			out.MostConsistentGoal = &GoalHighlight{
				GoalID:           g.ID,
				Title:            g.Title,
				CurrentStreak:    g.CurrentStreak,
				CheckInsThisWeek: perGoalThisWeek[g.ID],
			}
		}
	}

	bestCat, bestCatCount := "", 0
	for _, c := range catOrder {
		if catCounts[c] > bestCatCount {
			bestCat, bestCatCount = c, catCounts[c]
		}
	}
	out.BestCategory = bestCat
	out.BestDayOfWeek = bestWeekday(thisWeek, loc)

	return out
}

// ComputeWeeklySummary aggregates the [weekStart, weekStart+7) window.
// badgeNames are the badges earned inside the window, looked up by the
// caller; they pass through untouched.
func ComputeWeeklySummary(points []CheckInPoint, goals []GoalSnapshot, badgeNames []string, weekStart time.Time, loc *time.Location) WeeklySummary {
	sum := WeeklySummary{
		WeekStart:    DayKey(weekStart, loc),
		WeekEnd:      DayKey(weekStart.AddDate(0, 0, 6), loc),
		Breakdown:    []GoalBreakdown{},
		BadgesEarned: badgeNames,
	}
	if sum.BadgesEarned == nil {
		sum.BadgesEarned = []string{}
	}

	perGoal := make(map[uint]int)
	for _, p := range points {
		if !InWeek(p.OccurredAt, weekStart) {
			continue
		}
		sum.TotalCheckIns++
		perGoal[p.GoalID]++
	}

	titles := make(map[uint]string, len(goals))
	for _, g := range goals {
		titles[g.ID] = g.Title
		if g.CurrentStreak > sum.TopStreak {
			sum.TopStreak = g.CurrentStreak
		}
		if g.CompletedAt != nil && InWeek(*g.CompletedAt, weekStart) {
			sum.GoalsCompleted++
		}
	}

	for _, g := range goals {
		if n, ok := perGoal[g.ID]; ok && n > 0 {
			sum.Breakdown = append(sum.Breakdown, GoalBreakdown{GoalID: g.ID, Title: titles[g.ID], CheckIns: n})
		}
	}
	sort.SliceStable(sum.Breakdown, func(i, j int) bool {
		return sum.Breakdown[i].CheckIns > sum.Breakdown[j].CheckIns
	})

	if len(sum.Breakdown) > 0 {
		sum.MostActiveGoal = sum.Breakdown[0].Title
	}

	return sum
}

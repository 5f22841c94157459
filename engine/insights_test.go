package engine

import (
	"testing"
	"time"
)

func TestComputeGoalInsightsBasics(t *testing.T) {
	// 6 check-ins spread over two weeks: Mon/Wed/Fri then Mon/Wed/Mon.
	times := []time.Time{
		day(2024, 1, 1, 9),  // Monday
		day(2024, 1, 3, 9),  // Wednesday
		day(2024, 1, 5, 9),  // Friday
		day(2024, 1, 8, 9),  // Monday
		day(2024, 1, 10, 9), // Wednesday
		day(2024, 1, 15, 9), // Monday
	}
	now := day(2024, 1, 15, 12)

	ins := ComputeGoalInsights(times, 0, time.UTC, now)
	if ins.TotalCheckIns != 6 {
		t.Errorf("total = %d, want 6", ins.TotalCheckIns)
	}
	// Span is 14 days = 2 weeks; 6/2 = 3.0.
	if ins.AveragePerWeek != 3.0 {
		t.Errorf("average per week = %v, want 3.0", ins.AveragePerWeek)
	}
	if ins.BestDayOfWeek != "Monday" {
		t.Errorf("best day = %s, want Monday", ins.BestDayOfWeek)
	}
	if ins.EstimatedCompletion != "" {
		t.Errorf("non-target goal should have no estimate, got %s", ins.EstimatedCompletion)
	}
	// 6 unique active days in the last 30: round(6/30*100) = 20.
	if ins.ConsistencyScore != 20 {
		t.Errorf("consistency = %d, want 20", ins.ConsistencyScore)
	}
}

func TestComputeGoalInsightsBestDayTie(t *testing.T) {
	// One Sunday and one Monday check-in: the earlier weekday index wins.
	times := []time.Time{
		day(2024, 1, 8, 9), // Monday
		day(2024, 1, 7, 9), // Sunday
	}
	ins := ComputeGoalInsights(times, 0, time.UTC, day(2024, 1, 8, 12))
	if ins.BestDayOfWeek != "Sunday" {
		t.Errorf("tie should go to Sunday, got %s", ins.BestDayOfWeek)
	}
}

func TestComputeGoalInsightsEstimatedCompletion(t *testing.T) {
	// 7 check-ins over one week → 7.0/week → 1/day. 10 remaining → 10 days.
	var times []time.Time
	for i := 0; i < 7; i++ {
		times = append(times, day(2024, 1, 1+i, 9))
	}
	now := day(2024, 1, 7, 12)

	ins := ComputeGoalInsights(times, 10, time.UTC, now)
	if ins.AveragePerWeek != 7.0 {
		t.Fatalf("average = %v, want 7.0", ins.AveragePerWeek)
	}
	if ins.EstimatedCompletion != "2024-01-17" {
		t.Errorf("estimate = %s, want 2024-01-17", ins.EstimatedCompletion)
	}

	// Nothing remaining → no estimate.
	if got := ComputeGoalInsights(times, 0, time.UTC, now); got.EstimatedCompletion != "" {
		t.Errorf("zero remaining should clear estimate, got %s", got.EstimatedCompletion)
	}
}

func TestComputeGoalInsightsEmpty(t *testing.T) {
	ins := ComputeGoalInsights(nil, 5, time.UTC, day(2024, 1, 1, 9))
	if ins.TotalCheckIns != 0 || ins.AveragePerWeek != 0 || ins.BestDayOfWeek != "" ||
		ins.EstimatedCompletion != "" || ins.ConsistencyScore != 0 {
		t.Errorf("empty history should yield zero insights, got %+v", ins)
	}
}

func TestDashboardTrendInfiniteImprovement(t *testing.T) {
	// Last week zero, this week three → +100 by convention, not a divide.
	now := day(2024, 1, 10, 12) // Wednesday; week starts Sunday Jan 7
	points := []CheckInPoint{
		{GoalID: 1, OccurredAt: day(2024, 1, 8, 9)},
		{GoalID: 1, OccurredAt: day(2024, 1, 9, 9)},
		{GoalID: 1, OccurredAt: day(2024, 1, 10, 9)},
	}

	out := ComputeDashboardInsights(points, nil, time.UTC, now)
	if out.TotalCheckInsThisWeek != 3 || out.TotalCheckInsLastWeek != 0 {
		t.Fatalf("week counts = %d/%d, want 3/0", out.TotalCheckInsThisWeek, out.TotalCheckInsLastWeek)
	}
	if out.WeekOverWeekTrend != 100 {
		t.Errorf("trend = %d, want 100", out.WeekOverWeekTrend)
	}
}

func TestDashboardTrendPercentage(t *testing.T) {
	now := day(2024, 1, 10, 12) // week starts Sunday Jan 7; last week Dec 31
	points := []CheckInPoint{
		// Last week: 4 check-ins.
		{GoalID: 1, OccurredAt: day(2024, 1, 1, 9)},
		{GoalID: 1, OccurredAt: day(2024, 1, 2, 9)},
		{GoalID: 1, OccurredAt: day(2024, 1, 3, 9)},
		{GoalID: 1, OccurredAt: day(2024, 1, 4, 9)},
		// This week: 3 check-ins.
		{GoalID: 1, OccurredAt: day(2024, 1, 8, 9)},
		{GoalID: 1, OccurredAt: day(2024, 1, 9, 9)},
		{GoalID: 1, OccurredAt: day(2024, 1, 10, 9)},
	}

	out := ComputeDashboardInsights(points, nil, time.UTC, now)
	if out.WeekOverWeekTrend != -25 {
		t.Errorf("trend = %d, want -25", out.WeekOverWeekTrend)
	}

	// Both weeks empty → flat zero, not +100.
	empty := ComputeDashboardInsights(nil, nil, time.UTC, now)
	if empty.WeekOverWeekTrend != 0 {
		t.Errorf("empty trend = %d, want 0", empty.WeekOverWeekTrend)
	}
}

func TestDashboardMostConsistentGoal(t *testing.T) {
	now := day(2024, 1, 10, 12)
	goals := []GoalSnapshot{
		{ID: 1, Title: "Read", Type: "habit", CurrentStreak: 4},
		{ID: 2, Title: "Run", Type: "habit", CurrentStreak: 9},
		{ID: 3, Title: "Ship", Type: "target", CurrentStreak: 0},
		{ID: 4, Title: "Old", Type: "habit", CurrentStreak: 30, Archived: true},
	}
	points := []CheckInPoint{
		{GoalID: 2, OccurredAt: day(2024, 1, 8, 9)},
		{GoalID: 2, OccurredAt: day(2024, 1, 9, 9)},
	}

	out := ComputeDashboardInsights(points, goals, time.UTC, now)
	if out.MostConsistentGoal == nil {
		t.Fatal("expected a most consistent goal")
	}
	if out.MostConsistentGoal.GoalID != 2 {
		t.Errorf("most consistent = goal %d, want 2 (archived goals excluded)", out.MostConsistentGoal.GoalID)
	}
	if out.MostConsistentGoal.CheckInsThisWeek != 2 {
		t.Errorf("this-week count = %d, want 2", out.MostConsistentGoal.CheckInsThisWeek)
	}
}

func TestDashboardBestCategoryAndDay(t *testing.T) {
	now := day(2024, 1, 10, 12)
	points := []CheckInPoint{
		{GoalID: 1, Category: "health", OccurredAt: day(2024, 1, 8, 9)},  // Monday
		{GoalID: 1, Category: "health", OccurredAt: day(2024, 1, 9, 9)},  // Tuesday
		{GoalID: 2, Category: "work", OccurredAt: day(2024, 1, 9, 10)},   // Tuesday
		{GoalID: 2, Category: "work", OccurredAt: day(2024, 1, 2, 10)},   // last week, ignored
	}

	out := ComputeDashboardInsights(points, nil, time.UTC, now)
	if out.BestCategory != "health" {
		t.Errorf("best category = %s, want health", out.BestCategory)
	}
	if out.BestDayOfWeek != "Tuesday" {
		t.Errorf("best day = %s, want Tuesday", out.BestDayOfWeek)
	}
}

func TestComputeWeeklySummary(t *testing.T) {
	weekStart := day(2024, 1, 7, 0) // Sunday
	done := day(2024, 1, 9, 15)
	outside := day(2024, 1, 20, 15)

	goals := []GoalSnapshot{
		{ID: 1, Title: "Read", Type: "habit", CurrentStreak: 12},
		{ID: 2, Title: "Run", Type: "habit", CurrentStreak: 3},
		{ID: 3, Title: "Ship", Type: "one_time", CompletedAt: &done},
		{ID: 4, Title: "Later", Type: "one_time", CompletedAt: &outside},
	}
	points := []CheckInPoint{
		{GoalID: 1, OccurredAt: day(2024, 1, 7, 9)},
		{GoalID: 1, OccurredAt: day(2024, 1, 8, 9)},
		{GoalID: 2, OccurredAt: day(2024, 1, 8, 9)},
		{GoalID: 2, OccurredAt: day(2024, 1, 9, 9)},
		{GoalID: 2, OccurredAt: day(2024, 1, 10, 9)},
		{GoalID: 1, OccurredAt: day(2024, 1, 14, 9)}, // next week, excluded
	}

	sum := ComputeWeeklySummary(points, goals, []string{"Week Warrior"}, weekStart, time.UTC)
	if sum.WeekStart != "2024-01-07" || sum.WeekEnd != "2024-01-13" {
		t.Errorf("window = %s..%s, want 2024-01-07..2024-01-13", sum.WeekStart, sum.WeekEnd)
	}
	if sum.TotalCheckIns != 5 {
		t.Errorf("total = %d, want 5", sum.TotalCheckIns)
	}
	if sum.GoalsCompleted != 1 {
		t.Errorf("goals completed = %d, want 1 (outside-window completion excluded)", sum.GoalsCompleted)
	}
	if sum.TopStreak != 12 {
		t.Errorf("top streak = %d, want 12", sum.TopStreak)
	}
	if sum.MostActiveGoal != "Run" {
		t.Errorf("most active = %s, want Run", sum.MostActiveGoal)
	}
	if len(sum.Breakdown) != 2 || sum.Breakdown[0].GoalID != 2 || sum.Breakdown[0].CheckIns != 3 {
		t.Errorf("breakdown = %+v, want Run(3) first", sum.Breakdown)
	}
	if len(sum.BadgesEarned) != 1 || sum.BadgesEarned[0] != "Week Warrior" {
		t.Errorf("badges = %v", sum.BadgesEarned)
	}
}

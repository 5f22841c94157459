package engine

import (
	"testing"
)

func TestCriteriaMet(t *testing.T) {
	ctx := BadgeContext{StreakDays: 7, TotalCheckIns: 10, GoalsCompleted: 0}

	cases := []struct {
		name  string
		ctype string
		value int
		want  bool
	}{
		{"streak met exactly", "streak_days", 7, true},
		{"streak not met", "streak_days", 8, false},
		{"check-ins met", "total_check_ins", 10, true},
		{"check-ins exceeded", "total_check_ins", 5, true},
		{"goals not met", "goals_completed", 1, false},
		{"unknown criteria", "lunar_phase", 1, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CriteriaMet(c.ctype, c.value, ctx); got != c.want {
				t.Errorf("CriteriaMet(%s, %d) = %v, want %v", c.ctype, c.value, got, c.want)
			}
		})
	}
}

func TestNewlyEarnedWeekWarrior(t *testing.T) {
	catalog := []BadgeSpec{
		{ID: 1, Slug: "week-warrior", CriteriaType: "streak_days", CriteriaValue: 7},
		{ID: 2, Slug: "monthly-machine", CriteriaType: "streak_days", CriteriaValue: 30},
		{ID: 3, Slug: "finisher", CriteriaType: "goals_completed", CriteriaValue: 1},
	}
	ctx := BadgeContext{StreakDays: 7, TotalCheckIns: 10, GoalsCompleted: 0}

	got := NewlyEarned(catalog, map[uint]struct{}{}, ctx)
	if len(got) != 1 || got[0].Slug != "week-warrior" {
		t.Fatalf("got %+v, want exactly week-warrior", got)
	}
}

func TestNewlyEarnedIdempotent(t *testing.T) {
	catalog := []BadgeSpec{
		{ID: 1, Slug: "first-step", CriteriaType: "total_check_ins", CriteriaValue: 1},
		{ID: 2, Slug: "week-warrior", CriteriaType: "streak_days", CriteriaValue: 7},
	}
	ctx := BadgeContext{StreakDays: 9, TotalCheckIns: 12}
	earned := map[uint]struct{}{}

	first := NewlyEarned(catalog, earned, ctx)
	if len(first) != 2 {
		t.Fatalf("first pass earned %d badges, want 2", len(first))
	}
	for _, b := range first {
		earned[b.ID] = struct{}{}
	}

	// Identical context against the updated earned set must be empty.
	if second := NewlyEarned(catalog, earned, ctx); len(second) != 0 {
		t.Errorf("second pass re-awarded %+v", second)
	}
}

func TestBadgeProgress(t *testing.T) {
	ctx := BadgeContext{StreakDays: 3, TotalCheckIns: 150, GoalsCompleted: 2}

	cur, pct := BadgeProgress("streak_days", 30, ctx)
	if cur != 3 || pct != 10 {
		t.Errorf("streak progress = %d/%.0f%%, want 3/10%%", cur, pct)
	}

	// Progress is capped at 100 even when the aggregate overshoots.
	cur, pct = BadgeProgress("total_check_ins", 100, ctx)
	if cur != 150 || pct != 100 {
		t.Errorf("check-in progress = %d/%.0f%%, want 150/100%%", cur, pct)
	}

	if _, pct = BadgeProgress("goals_completed", 0, ctx); pct != 100 {
		t.Errorf("zero threshold should report 100%%, got %.0f", pct)
	}
}

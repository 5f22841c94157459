package models

import "time"

// Badge criteria types: the dimension a badge's threshold is measured against.
const (
	CriteriaStreakDays     = "streak_days"
	CriteriaTotalCheckIns  = "total_check_ins"
	CriteriaGoalsCompleted = "goals_completed"
)

// Badge is a static catalog entry. The catalog is seeded at migration time
// and is not user-scoped.
type Badge struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Slug          string    `gorm:"size:64;not null;uniqueIndex" json:"slug"`
	Name          string    `gorm:"size:128;not null" json:"name"`
	Description   string    `gorm:"size:255" json:"description"`
	Icon          string    `gorm:"size:16" json:"icon"`
	CriteriaType  string    `gorm:"size:32;not null;index" json:"criteria_type"`
	CriteriaValue int       `gorm:"not null" json:"criteria_value"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserBadge joins a user to an earned badge. The composite unique index makes
// awarding idempotent even under concurrent evaluation.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID  uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	GoalID   *uint     `json:"goal_id"`
	EarnedAt time.Time `gorm:"index;not null" json:"earned_at"`
	Badge    Badge     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"badge"`
}

// DefaultBadges returns the seed catalog inserted on first boot.
func DefaultBadges() []Badge {
	return []Badge{
		{Slug: "first-step", Name: "First Step", Description: "Record your first check-in", Icon: "👣", CriteriaType: CriteriaTotalCheckIns, CriteriaValue: 1},
		{Slug: "getting-going", Name: "Getting Going", Description: "10 check-ins overall", Icon: "🚶", CriteriaType: CriteriaTotalCheckIns, CriteriaValue: 10},
		{Slug: "half-century", Name: "Half Century", Description: "50 check-ins overall", Icon: "🏃", CriteriaType: CriteriaTotalCheckIns, CriteriaValue: 50},
		{Slug: "century-club", Name: "Century Club", Description: "100 check-ins overall", Icon: "💯", CriteriaType: CriteriaTotalCheckIns, CriteriaValue: 100},
		{Slug: "thousand-strong", Name: "Thousand Strong", Description: "1000 check-ins overall", Icon: "🏆", CriteriaType: CriteriaTotalCheckIns, CriteriaValue: 1000},
		{Slug: "three-in-a-row", Name: "Three in a Row", Description: "Reach a 3-day streak", Icon: "✨", CriteriaType: CriteriaStreakDays, CriteriaValue: 3},
		{Slug: "week-warrior", Name: "Week Warrior", Description: "Reach a 7-day streak", Icon: "🔥", CriteriaType: CriteriaStreakDays, CriteriaValue: 7},
		{Slug: "fortnight-force", Name: "Fortnight Force", Description: "Reach a 14-day streak", Icon: "📅", CriteriaType: CriteriaStreakDays, CriteriaValue: 14},
		{Slug: "monthly-machine", Name: "Monthly Machine", Description: "Reach a 30-day streak", Icon: "💪", CriteriaType: CriteriaStreakDays, CriteriaValue: 30},
		{Slug: "centurion", Name: "Centurion", Description: "Reach a 100-day streak", Icon: "🏛️", CriteriaType: CriteriaStreakDays, CriteriaValue: 100},
		{Slug: "year-of-power", Name: "Year of Power", Description: "Reach a 365-day streak", Icon: "⭐", CriteriaType: CriteriaStreakDays, CriteriaValue: 365},
		{Slug: "finisher", Name: "Finisher", Description: "Complete your first goal", Icon: "🎯", CriteriaType: CriteriaGoalsCompleted, CriteriaValue: 1},
		{Slug: "serial-achiever", Name: "Serial Achiever", Description: "Complete 5 goals", Icon: "🎖️", CriteriaType: CriteriaGoalsCompleted, CriteriaValue: 5},
		{Slug: "goal-crusher", Name: "Goal Crusher", Description: "Complete 25 goals", Icon: "👑", CriteriaType: CriteriaGoalsCompleted, CriteriaValue: 25},
	}
}

package models

import "time"

// StreakFreeze is the per (user, goal) consumable that excuses a single
// missed day. Available stays within [0,3]. ActiveUntil is a day key; when
// it covers the skipped day, the next check-in treats the gap as tolerated.
// LastEarnedAt guards against double-awarding within 24 hours when the
// milestone check runs more than once.
type StreakFreeze struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;uniqueIndex:idx_freeze_user_goal" json:"user_id"`
	GoalID       uint       `gorm:"not null;uniqueIndex:idx_freeze_user_goal" json:"goal_id"`
	Available    int        `gorm:"default:0" json:"available"`
	ActiveUntil  string     `gorm:"size:10" json:"active_until"`
	LastEarnedAt *time.Time `json:"last_earned_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

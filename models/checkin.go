package models

import "time"

// CheckIn is an immutable record of a single engagement instant.
// OccurredAt is stored as an instant; conversion to a calendar day happens at
// read time in the owner's timezone. Value is 1 for habit and one-time goals
// and an arbitrary positive contribution for target goals.
type CheckIn struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GoalID     uint      `gorm:"index;not null" json:"goal_id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	OccurredAt time.Time `gorm:"index;not null" json:"occurred_at"`
	Value      int       `gorm:"not null;default:1" json:"value"`
	Note       string    `gorm:"size:1024" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

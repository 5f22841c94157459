package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal types. The three behaviors are mutually exclusive: one_time goals are
// marked done once, target goals accumulate CurrentValue toward TargetValue,
// habit goals track day streaks.
const (
	GoalTypeOneTime = "one_time"
	GoalTypeTarget  = "target"
	GoalTypeHabit   = "habit"
)

// Goal is a tracked objective owned by a user.
// LastCheckInDate is a calendar-day key (YYYY-MM-DD in the owner's timezone),
// not an instant; streak fields are meaningful for habit goals only.
type Goal struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	Category        string         `gorm:"size:64;index" json:"category"`
	Type            string         `gorm:"size:16;not null;default:'habit'" json:"type"`
	TargetValue     int            `gorm:"default:0" json:"target_value"`
	CurrentValue    int            `gorm:"default:0" json:"current_value"`
	CurrentStreak   int            `gorm:"default:0" json:"current_streak"`
	LongestStreak   int            `gorm:"default:0" json:"longest_streak"`
	LastCheckInDate string         `gorm:"size:10" json:"last_check_in_date"`
	CompletedAt     *time.Time     `json:"completed_at"`
	Archived        bool           `gorm:"default:false;index" json:"archived"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	User            User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CheckIns        []CheckIn      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// ValidType reports whether t is one of the three goal types.
func ValidType(t string) bool {
	return t == GoalTypeOneTime || t == GoalTypeTarget || t == GoalTypeHabit
}

// Completed reports whether the goal has been completed.
func (g *Goal) Completed() bool {
	return g.CompletedAt != nil
}

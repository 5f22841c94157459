package engine

import (
	"errors"
	"time"
)

// MaxFreezes caps the consumable balance per (user, goal).
const MaxFreezes = 3

// freezeAwardInterval: a freeze is earned each time the streak hits a
// multiple of this many days.
const freezeAwardInterval = 7

// freezeAwardCooldown prevents double-awarding when the milestone check runs
// more than once for the same streak value.
const freezeAwardCooldown = 24 * time.Hour

var (
	// ErrNoFreezeAvailable is returned when activating with a zero balance.
	ErrNoFreezeAvailable = errors.New("no streak freeze available")
	// ErrFreezeAlreadyActive is returned when a freeze already covers today.
	ErrFreezeAlreadyActive = errors.New("streak freeze already active")
)

// CanAwardFreeze decides whether a freeze is earned for the given streak.
// Awards happen only on positive multiples of 7, below the cap, and no more
// than once per 24 hours.
func CanAwardFreeze(currentStreak, available int, lastEarnedAt *time.Time, now time.Time) bool {
	if currentStreak <= 0 || currentStreak%freezeAwardInterval != 0 {
		return false
	}
	if available >= MaxFreezes {
		return false
	}
	if lastEarnedAt != nil && now.Sub(*lastEarnedAt) < freezeAwardCooldown {
		return false
	}
	return true
}

// ActivateFreeze validates and applies an activation. today is the caller's
// current day key; on success the freeze protects today, so tomorrow's streak
// update treats today as a tolerated gap.
func ActivateFreeze(available int, activeUntil, today string) (newAvailable int, newActiveUntil string, err error) {
	if available <= 0 {
		return available, activeUntil, ErrNoFreezeAvailable
	}
	if activeUntil != "" && DayNumber(activeUntil) >= DayNumber(today) {
		return available, activeUntil, ErrFreezeAlreadyActive
	}
	return available - 1, today, nil
}

// FreezeProtects reports whether an activated freeze excuses the skipped day.
// Consumption is retroactive: the protection applies when the next check-in
// lands after a one-day hole whose day key equals ActiveUntil.
func FreezeProtects(activeUntil, skippedDay string) bool {
	return activeUntil != "" && activeUntil == skippedDay
}

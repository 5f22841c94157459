package utils

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/stridehq/stride/config"
	"github.com/stridehq/stride/engine"
	"github.com/stridehq/stride/models"
)

// StreakWarningQueue is the Redis list the external notification dispatcher
// consumes. This service only enqueues; delivery is not its job.
const StreakWarningQueue = "notify:streak_warning"

type streakWarning struct {
	UserID        uint   `json:"user_id"`
	GoalID        uint   `json:"goal_id"`
	GoalTitle     string `json:"goal_title"`
	CurrentStreak int    `json:"current_streak"`
	Day           string `json:"day"`
}

// StartStreakWarningScanner launches a background goroutine that periodically
// finds habit goals with a live streak and no check-in yet today, and queues
// a warning for each owner. Best-effort: failures are logged and retried on
// the next tick.
func StartStreakWarningScanner(interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			scanOnce()
		}
	}()
}

func scanOnce() {
	db := config.DB()
	if db == nil {
		return
	}

	type row struct {
		models.Goal
		Tz string
	}
	var rows []row
	if err := db.Model(&models.Goal{}).
		Select("goals.*, users.timezone AS tz").
		Joins("JOIN users ON users.id = goals.user_id").
		Where("goals.type = ? AND goals.archived = ? AND goals.current_streak > 0", models.GoalTypeHabit, false).
		Find(&rows).Error; err != nil {
		Sugar.Warnf("streak warning scan failed: %v", err)
		return
	}

	rc := GetRedis()
	if rc == nil {
		return
	}
	now := time.Now()

	queued := 0
	for _, r := range rows {
		loc, err := time.LoadLocation(r.Tz)
		if err != nil {
			loc = time.UTC
		}
		today := engine.DayKey(now, loc)
		if r.LastCheckInDate == today {
			continue // already safe for today
		}
		// The streak is only at risk while the grace day is today.
		if r.LastCheckInDate != engine.AddDays(today, -1) {
			continue
		}

		w := streakWarning{
			UserID:        r.UserID,
			GoalID:        r.Goal.ID,
			GoalTitle:     r.Title,
			CurrentStreak: r.CurrentStreak,
			Day:           today,
		}
		b, err := json.Marshal(w)
		if err != nil {
			continue
		}
		// Dedupe: one warning per goal per day.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		key := "notify:streak_warning:sent:" + today + ":" + strconv.FormatUint(uint64(r.Goal.ID), 10)
		ok, err := rc.SetNX(ctx, key, "1", 48*time.Hour).Result()
		if err == nil && ok {
			if err := rc.RPush(ctx, StreakWarningQueue, b).Err(); err != nil {
				Sugar.Warnf("queue streak warning goal=%d: %v", r.Goal.ID, err)
			} else {
				queued++
			}
		}
		cancel()
	}

	if queued > 0 {
		Sugar.Infof("queued %d streak warnings", queued)
	}
}

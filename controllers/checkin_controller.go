package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stridehq/stride/engine"
	"github.com/stridehq/stride/models"
	"github.com/stridehq/stride/utils"
)

// CheckInController handles the check-in write path and streak reads.
type CheckInController struct {
	db *gorm.DB
}

// NewCheckInController creates a new CheckInController instance.
func NewCheckInController(db *gorm.DB) *CheckInController {
	return &CheckInController{db: db}
}

// Create records a check-in against a goal. The whole transition runs in one
// transaction with the goal row locked, so two concurrent check-ins on the
// same goal serialize and the second sees the first's streak state.
func (c *CheckInController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req struct {
		OccurredAt *time.Time `json:"occurred_at"`
		Value      int        `json:"value"`
		Note       string     `json:"note"`
	}
	// An empty body is fine: everything defaults.
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	now := time.Now()
	at := now
	if req.OccurredAt != nil {
		at = *req.OccurredAt
	}
	if at.After(now.Add(5 * time.Minute)) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "occurred_at must not be in the future")
		return
	}
	if req.Value == 0 {
		req.Value = 1
	}
	if req.Value < 1 {
		utils.Error(ctx, http.StatusBadRequest, 40022, "value must be positive")
		return
	}

	loc := userLocation(c.db, userID)

	var goal models.Goal
	var checkIn models.CheckIn
	var streak engine.StreakResult
	var freezeAwarded bool

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", ctx.Param("id"), userID).
			First(&goal).Error; err != nil {
			return errGoalNotFound
		}
		if goal.Archived {
			return errGoalArchived
		}

		day := engine.DayKey(at, loc)

		switch goal.Type {
		case models.GoalTypeHabit:
			req.Value = 1
			if goal.LastCheckInDate == day {
				return errAlreadyCheckedIn
			}
			// A check-in dated before the streak's last day would rewind the
			// streak state; history edits go through delete + re-create.
			if goal.LastCheckInDate != "" && engine.DayNumber(day) < engine.DayNumber(goal.LastCheckInDate) {
				return errBackdatedCheckIn
			}

			var freeze models.StreakFreeze
			hasFreeze := tx.Where("user_id = ? AND goal_id = ?", userID, goal.ID).
				First(&freeze).Error == nil

			protected := hasFreeze && engine.FreezeProtects(freeze.ActiveUntil, engine.AddDays(day, -1))
			streak = engine.UpdateStreakOnCheckIn(goal.CurrentStreak, goal.LongestStreak, goal.LastCheckInDate, at, protected, loc)
			goal.CurrentStreak = streak.CurrentStreak
			goal.LongestStreak = streak.LongestStreak
			goal.LastCheckInDate = streak.LastCheckInDate

			if engine.CanAwardFreeze(goal.CurrentStreak, freeze.Available, freeze.LastEarnedAt, now) {
				freeze.UserID = userID
				freeze.GoalID = goal.ID
				freeze.Available++
				earned := now
				freeze.LastEarnedAt = &earned
				if err := tx.Save(&freeze).Error; err != nil {
					// Losing a freeze award must not void the check-in.
					utils.Sugar.Warnf("freeze award failed goal=%d: %v", goal.ID, err)
				} else {
					freezeAwarded = true
				}
			}

		case models.GoalTypeOneTime:
			req.Value = 1
			if goal.Completed() {
				return errGoalCompleted
			}
			goal.CompletedAt = &now
			goal.LastCheckInDate = day

		case models.GoalTypeTarget:
			if goal.Completed() {
				return errGoalCompleted
			}
			goal.CurrentValue += req.Value
			goal.LastCheckInDate = day
			if goal.CurrentValue >= goal.TargetValue {
				goal.CompletedAt = &now
			}
		}

		checkIn = models.CheckIn{
			GoalID:     goal.ID,
			UserID:     userID,
			OccurredAt: at,
			Value:      req.Value,
			Note:       utils.StripTags(strings.TrimSpace(req.Note)),
		}
		if err := tx.Create(&checkIn).Error; err != nil {
			return err
		}
		return tx.Save(&goal).Error
	})

	switch {
	case err == nil:
	case errors.Is(err, errGoalNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "goal not found")
		return
	case errors.Is(err, errGoalArchived):
		utils.Error(ctx, http.StatusBadRequest, 40017, "goal is archived")
		return
	case errors.Is(err, errAlreadyCheckedIn):
		utils.Error(ctx, http.StatusBadRequest, 40020, "already checked in today")
		return
	case errors.Is(err, errBackdatedCheckIn):
		utils.Error(ctx, http.StatusBadRequest, 40027, "occurred_at precedes the last check-in day")
		return
	case errors.Is(err, errGoalCompleted):
		utils.Error(ctx, http.StatusBadRequest, 40016, "goal already completed")
		return
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to record check-in")
		return
	}

	// Side effects after the commit: neither can undo the check-in.
	badges := checkAndAwardBadges(c.db, userID, &goal.ID, goal.CurrentStreak)
	utils.InvalidateByPrefix(insightsCachePrefix(userID))

	utils.Created(ctx, gin.H{
		"check_in":       checkIn,
		"goal":           goal,
		"streak":         streakPayload(goal, loc),
		"new_badges":     badges,
		"freeze_awarded": freezeAwarded,
	})
}

// List returns a goal's check-ins, newest first, optionally bounded by
// from/to day keys (inclusive).
func (c *CheckInController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var goal models.Goal
	if !loadOwnedGoal(ctx, c.db, userID, &goal) {
		return
	}

	q := c.db.Where("goal_id = ?", goal.ID)
	if from := ctx.Query("from"); from != "" {
		t := engine.ParseDayKey(from)
		if t.IsZero() {
			utils.Error(ctx, http.StatusBadRequest, 40023, "from must be YYYY-MM-DD")
			return
		}
		q = q.Where("occurred_at >= ?", t)
	}
	if to := ctx.Query("to"); to != "" {
		t := engine.ParseDayKey(to)
		if t.IsZero() {
			utils.Error(ctx, http.StatusBadRequest, 40023, "to must be YYYY-MM-DD")
			return
		}
		q = q.Where("occurred_at < ?", t.AddDate(0, 0, 1))
	}

	var checkIns []models.CheckIn
	if err := q.Order("occurred_at desc").Find(&checkIns).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list check-ins")
		return
	}
	utils.Success(ctx, checkIns)
}

// Delete removes a check-in and reverses its contribution. Habit streak
// fields are recomputed from the remaining history since the incremental
// update cannot run backwards.
func (c *CheckInController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	loc := userLocation(c.db, userID)
	var goal models.Goal

	err := c.db.Transaction(func(tx *gorm.DB) error {
		var checkIn models.CheckIn
		if err := tx.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).
			First(&checkIn).Error; err != nil {
			return errCheckInNotFound
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", checkIn.GoalID).
			First(&goal).Error; err != nil {
			return err
		}

		if err := tx.Delete(&checkIn).Error; err != nil {
			return err
		}

		switch goal.Type {
		case models.GoalTypeTarget:
			goal.CurrentValue -= checkIn.Value
			if goal.CurrentValue < 0 {
				goal.CurrentValue = 0
			}
			if goal.CurrentValue < goal.TargetValue {
				goal.CompletedAt = nil
			}
		case models.GoalTypeHabit:
			var times []time.Time
			if err := tx.Model(&models.CheckIn{}).
				Where("goal_id = ?", goal.ID).
				Pluck("occurred_at", &times).Error; err != nil {
				return err
			}
			res := engine.CalculateStreak(times, loc, time.Now())
			goal.CurrentStreak = res.CurrentStreak
			goal.LongestStreak = res.LongestStreak
			goal.LastCheckInDate = res.LastCheckInDate
		}

		return tx.Save(&goal).Error
	})

	switch {
	case err == nil:
	case errors.Is(err, errCheckInNotFound):
		utils.Error(ctx, http.StatusNotFound, 40403, "check-in not found")
		return
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to delete check-in")
		return
	}

	utils.InvalidateByPrefix(insightsCachePrefix(userID))
	utils.Success(ctx, gin.H{"goal": goal})
}

// GetStreak returns the streak state for one habit goal.
func (c *CheckInController) GetStreak(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var goal models.Goal
	if !loadOwnedGoal(ctx, c.db, userID, &goal) {
		return
	}

	loc := userLocation(c.db, userID)
	utils.Success(ctx, streakPayload(goal, loc))
}

// streakPayload derives the read-side streak view. at_risk flags a live
// streak whose grace day is today: one more missed day and it resets.
func streakPayload(goal models.Goal, loc *time.Location) gin.H {
	today := engine.DayKey(time.Now(), loc)
	checkedInToday := goal.LastCheckInDate == today
	atRisk := goal.CurrentStreak > 0 && goal.LastCheckInDate == engine.AddDays(today, -1)

	return gin.H{
		"current_streak":     goal.CurrentStreak,
		"longest_streak":     goal.LongestStreak,
		"last_check_in_date": goal.LastCheckInDate,
		"checked_in_today":   checkedInToday,
		"at_risk":            atRisk,
	}
}

var (
	errGoalNotFound     = errors.New("goal not found")
	errGoalArchived     = errors.New("goal archived")
	errGoalCompleted    = errors.New("goal completed")
	errAlreadyCheckedIn = errors.New("already checked in today")
	errBackdatedCheckIn = errors.New("check-in predates streak state")
	errCheckInNotFound  = errors.New("check-in not found")
)

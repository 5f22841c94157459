package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stridehq/stride/engine"
	"github.com/stridehq/stride/models"
	"github.com/stridehq/stride/utils"
)

// FreezeController manages streak freeze balance and activation.
type FreezeController struct {
	db *gorm.DB
}

// NewFreezeController creates a new FreezeController instance.
func NewFreezeController(db *gorm.DB) *FreezeController {
	return &FreezeController{db: db}
}

// Status returns the freeze balance for a goal. Goals with no freeze row yet
// report a zero balance rather than 404.
func (f *FreezeController) Status(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var goal models.Goal
	if !loadOwnedGoal(ctx, f.db, userID, &goal) {
		return
	}

	var freeze models.StreakFreeze
	if err := f.db.Where("user_id = ? AND goal_id = ?", userID, goal.ID).
		First(&freeze).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load freeze state")
		return
	}

	loc := userLocation(f.db, userID)
	today := engine.DayKey(time.Now(), loc)
	active := freeze.ActiveUntil != "" && engine.DayNumber(freeze.ActiveUntil) >= engine.DayNumber(today)

	utils.Success(ctx, gin.H{
		"available":    freeze.Available,
		"max":          engine.MaxFreezes,
		"active":       active,
		"active_until": freeze.ActiveUntil,
	})
}

// Activate consumes one freeze to protect today. The protected day is the
// caller's local today: if tomorrow passes without a check-in, the streak
// survives the gap.
func (f *FreezeController) Activate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	loc := userLocation(f.db, userID)
	today := engine.DayKey(time.Now(), loc)

	var freeze models.StreakFreeze
	err := f.db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		if err := tx.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).
			First(&goal).Error; err != nil {
			return errGoalNotFound
		}
		if goal.Type != models.GoalTypeHabit {
			return errNotHabit
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND goal_id = ?", userID, goal.ID).
			First(&freeze).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Never earned one: same outcome as a zero balance.
				return engine.ErrNoFreezeAvailable
			}
			return err
		}

		available, until, err := engine.ActivateFreeze(freeze.Available, freeze.ActiveUntil, today)
		if err != nil {
			return err
		}
		freeze.Available = available
		freeze.ActiveUntil = until
		return tx.Save(&freeze).Error
	})

	switch {
	case err == nil:
	case errors.Is(err, errGoalNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "goal not found")
		return
	case errors.Is(err, errNotHabit):
		utils.Error(ctx, http.StatusBadRequest, 40024, "freezes only apply to habit goals")
		return
	case errors.Is(err, engine.ErrNoFreezeAvailable):
		utils.Error(ctx, http.StatusBadRequest, 40025, "no streak freeze available")
		return
	case errors.Is(err, engine.ErrFreezeAlreadyActive):
		utils.Error(ctx, http.StatusBadRequest, 40026, "streak freeze already active")
		return
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to activate freeze")
		return
	}

	utils.Success(ctx, gin.H{
		"available":    freeze.Available,
		"active_until": freeze.ActiveUntil,
	})
}

var errNotHabit = errors.New("not a habit goal")

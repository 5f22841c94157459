package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stridehq/stride/engine"
	"github.com/stridehq/stride/middleware"
	"github.com/stridehq/stride/models"
	"github.com/stridehq/stride/utils"
)

// currentUserID extracts the authenticated user id set by the auth middleware.
func currentUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// userLocation resolves the owner's IANA timezone to a *time.Location.
// Unknown or empty zones fall back to UTC rather than failing the request.
func userLocation(db *gorm.DB, userID uint) *time.Location {
	var tz string
	if err := db.Model(&models.User{}).
		Where("id = ?", userID).
		Pluck("timezone", &tz).Error; err != nil || tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// badgeContext aggregates the user-wide counters badge criteria are measured
// against. streakDays is passed in by the caller because the streak that just
// changed may not be flushed to a fresh read yet.
func badgeContext(db *gorm.DB, userID uint, streakDays int) engine.BadgeContext {
	var totalCheckIns int64
	if err := db.Model(&models.CheckIn{}).Where("user_id = ?", userID).Count(&totalCheckIns).Error; err != nil {
		totalCheckIns = 0
	}

	var goalsCompleted int64
	if err := db.Model(&models.Goal{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&goalsCompleted).Error; err != nil {
		goalsCompleted = 0
	}

	// The badge context uses the best streak the user holds right now, not
	// just the goal that triggered the evaluation.
	var bestStreak int
	if err := db.Model(&models.Goal{}).
		Where("user_id = ? AND type = ?", userID, models.GoalTypeHabit).
		Select("COALESCE(MAX(current_streak),0)").
		Scan(&bestStreak).Error; err != nil {
		bestStreak = 0
	}
	if streakDays > bestStreak {
		bestStreak = streakDays
	}

	return engine.BadgeContext{
		StreakDays:     bestStreak,
		TotalCheckIns:  int(totalCheckIns),
		GoalsCompleted: int(goalsCompleted),
	}
}

// checkAndAwardBadges evaluates the catalog against the user's current
// aggregates and persists any newly earned badges. Best-effort: failures are
// logged and never fail the triggering request. The composite unique index on
// user_badges makes concurrent evaluation idempotent.
func checkAndAwardBadges(db *gorm.DB, userID uint, goalID *uint, streakDays int) []models.Badge {
	var catalog []models.Badge
	if err := db.Order("criteria_value asc").Find(&catalog).Error; err != nil {
		utils.Sugar.Warnf("badge catalog load failed user=%d: %v", userID, err)
		return nil
	}

	var earnedIDs []uint
	if err := db.Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &earnedIDs).Error; err != nil {
		utils.Sugar.Warnf("earned badge load failed user=%d: %v", userID, err)
		return nil
	}
	earned := make(map[uint]struct{}, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = struct{}{}
	}

	specs := make([]engine.BadgeSpec, len(catalog))
	byID := make(map[uint]models.Badge, len(catalog))
	for i, b := range catalog {
		specs[i] = engine.BadgeSpec{ID: b.ID, Slug: b.Slug, CriteriaType: b.CriteriaType, CriteriaValue: b.CriteriaValue}
		byID[b.ID] = b
	}

	bctx := badgeContext(db, userID, streakDays)
	now := time.Now()

	var awarded []models.Badge
	for _, spec := range engine.NewlyEarned(specs, earned, bctx) {
		ub := models.UserBadge{UserID: userID, BadgeID: spec.ID, GoalID: goalID, EarnedAt: now}
		// Each badge inserts independently so one failure never blocks the rest.
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ub).Error; err != nil {
			utils.Sugar.Warnf("badge award failed user=%d badge=%s: %v", userID, spec.Slug, err)
			continue
		}
		awarded = append(awarded, byID[spec.ID])
	}
	return awarded
}

// loadOwnedGoal fetches a goal by path id and verifies ownership. Writes the
// error response itself and returns false when the caller should stop.
func loadOwnedGoal(ctx *gin.Context, db *gorm.DB, userID uint, dest *models.Goal) bool {
	if err := db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(dest).Error; err != nil {
		utils.Error(ctx, 404, 40401, "goal not found")
		return false
	}
	return true
}

// insightsCachePrefix scopes cached insight payloads per user so check-in
// writes can invalidate everything derived from them in one sweep.
func insightsCachePrefix(userID uint) string {
	return "insights:user:" + strconv.FormatUint(uint64(userID), 10) + ":"
}

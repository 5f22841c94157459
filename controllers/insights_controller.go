package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stridehq/stride/engine"
	"github.com/stridehq/stride/models"
	"github.com/stridehq/stride/utils"
)

// InsightsController exposes per-goal and cross-goal analytics.
type InsightsController struct {
	db *gorm.DB
}

// NewInsightsController creates a new InsightsController instance.
func NewInsightsController(db *gorm.DB) *InsightsController {
	return &InsightsController{db: db}
}

// GoalInsights returns analytics for one goal derived from its full
// check-in history.
func (i *InsightsController) GoalInsights(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var goal models.Goal
	if !loadOwnedGoal(ctx, i.db, userID, &goal) {
		return
	}

	var times []time.Time
	if err := i.db.Model(&models.CheckIn{}).
		Where("goal_id = ?", goal.ID).
		Pluck("occurred_at", &times).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load check-ins")
		return
	}

	remaining := 0
	if goal.Type == models.GoalTypeTarget && !goal.Completed() {
		remaining = goal.TargetValue - goal.CurrentValue
	}

	loc := userLocation(i.db, userID)
	utils.Success(ctx, engine.ComputeGoalInsights(times, remaining, loc, time.Now()))
}

// Dashboard returns the cross-goal weekly view. The payload is cached per
// user and invalidated on every check-in write.
func (i *InsightsController) Dashboard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	cacheKey := insightsCachePrefix(userID) + "dashboard"
	if raw, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", raw)
		return
	}

	loc := userLocation(i.db, userID)
	now := time.Now()

	// Two weeks of points is all the dashboard math needs.
	since := engine.WeekStart(now, loc).AddDate(0, 0, -7)
	points, err := i.loadPoints(userID, since, now.Add(time.Hour))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load check-ins")
		return
	}

	goals, err := i.loadSnapshots(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load goals")
		return
	}

	result := engine.ComputeDashboardInsights(points, goals, loc, now)
	payload := utils.JSONResponse{Code: 0, Message: "success", Data: result}
	utils.CacheSetJSON(cacheKey, payload, 0)
	ctx.JSON(http.StatusOK, payload)
}

// WeeklySummary aggregates one week, defaulting to the current one.
// ?week_start=YYYY-MM-DD selects a past week; it is snapped back to the
// surrounding Sunday.
func (i *InsightsController) WeeklySummary(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	loc := userLocation(i.db, userID)
	now := time.Now()

	weekStart := engine.WeekStart(now, loc)
	if raw := ctx.Query("week_start"); raw != "" {
		t := engine.ParseDayKey(raw)
		if t.IsZero() {
			utils.Error(ctx, http.StatusBadRequest, 40023, "week_start must be YYYY-MM-DD")
			return
		}
		local := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		weekStart = engine.WeekStart(local, loc)
	}

	cacheKey := insightsCachePrefix(userID) + "weekly:" + engine.DayKey(weekStart, loc)
	if raw, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", raw)
		return
	}

	weekEnd := weekStart.AddDate(0, 0, 7)
	points, err := i.loadPoints(userID, weekStart, weekEnd)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load check-ins")
		return
	}

	goals, err := i.loadSnapshots(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load goals")
		return
	}

	var badgeNames []string
	if err := i.db.Model(&models.UserBadge{}).
		Joins("JOIN badges ON badges.id = user_badges.badge_id").
		Where("user_badges.user_id = ? AND user_badges.earned_at >= ? AND user_badges.earned_at < ?", userID, weekStart, weekEnd).
		Pluck("badges.name", &badgeNames).Error; err != nil {
		badgeNames = nil
	}

	summary := engine.ComputeWeeklySummary(points, goals, badgeNames, weekStart, loc)

	result := gin.H{
		"summary":     summary,
		"digest_html": utils.RenderMarkdown(weeklyDigestMarkdown(summary)),
	}
	payload := utils.JSONResponse{Code: 0, Message: "success", Data: result}
	utils.CacheSetJSON(cacheKey, payload, 0)
	ctx.JSON(http.StatusOK, payload)
}

func (i *InsightsController) loadPoints(userID uint, from, to time.Time) ([]engine.CheckInPoint, error) {
	type row struct {
		GoalID     uint
		Category   string
		OccurredAt time.Time
		Value      int
	}
	var rows []row
	if err := i.db.Model(&models.CheckIn{}).
		Select("check_ins.goal_id, goals.category, check_ins.occurred_at, check_ins.value").
		Joins("JOIN goals ON goals.id = check_ins.goal_id").
		Where("check_ins.user_id = ? AND check_ins.occurred_at >= ? AND check_ins.occurred_at < ?", userID, from, to).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	points := make([]engine.CheckInPoint, len(rows))
	for n, r := range rows {
		points[n] = engine.CheckInPoint{GoalID: r.GoalID, Category: r.Category, OccurredAt: r.OccurredAt, Value: r.Value}
	}
	return points, nil
}

func (i *InsightsController) loadSnapshots(userID uint) ([]engine.GoalSnapshot, error) {
	var goals []models.Goal
	if err := i.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, err
	}

	snaps := make([]engine.GoalSnapshot, len(goals))
	for n, g := range goals {
		snaps[n] = engine.GoalSnapshot{
			ID:            g.ID,
			Title:         g.Title,
			Category:      g.Category,
			Type:          g.Type,
			CurrentStreak: g.CurrentStreak,
			Archived:      g.Archived,
			CompletedAt:   g.CompletedAt,
		}
	}
	return snaps, nil
}

// weeklyDigestMarkdown renders the summary as a small markdown report; the
// caller converts it to sanitized HTML for mail-style display.
func weeklyDigestMarkdown(s engine.WeeklySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Your week: %s to %s\n\n", s.WeekStart, s.WeekEnd)
	fmt.Fprintf(&b, "- **%d** check-ins\n", s.TotalCheckIns)
	fmt.Fprintf(&b, "- **%d** goals completed\n", s.GoalsCompleted)
	if s.TopStreak > 0 {
		fmt.Fprintf(&b, "- Top streak: **%d** days\n", s.TopStreak)
	}
	if s.MostActiveGoal != "" {
		fmt.Fprintf(&b, "- Most active goal: **%s**\n", s.MostActiveGoal)
	}
	if len(s.BadgesEarned) > 0 {
		fmt.Fprintf(&b, "- Badges earned: %s\n", strings.Join(s.BadgesEarned, ", "))
	}
	if len(s.Breakdown) > 0 {
		b.WriteString("\n| Goal | Check-ins |\n| --- | --- |\n")
		for _, row := range s.Breakdown {
			fmt.Fprintf(&b, "| %s | %d |\n", row.Title, row.CheckIns)
		}
	}
	return b.String()
}

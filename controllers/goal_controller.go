package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stridehq/stride/models"
	"github.com/stridehq/stride/utils"
)

// GoalController manages goal CRUD and lifecycle transitions.
type GoalController struct {
	db *gorm.DB
}

// NewGoalController creates a new GoalController instance.
func NewGoalController(db *gorm.DB) *GoalController {
	return &GoalController{db: db}
}

type goalRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	TargetValue int    `json:"target_value"`
}

// List returns the caller's goals, optionally filtered by archived state,
// category and type.
func (g *GoalController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	q := g.db.Where("user_id = ?", userID)
	switch ctx.Query("archived") {
	case "true":
		q = q.Where("archived = ?", true)
	case "", "false":
		q = q.Where("archived = ?", false)
	case "all":
	}
	if c := strings.TrimSpace(ctx.Query("category")); c != "" {
		q = q.Where("category = ?", c)
	}
	if t := strings.TrimSpace(ctx.Query("type")); t != "" {
		q = q.Where("type = ?", t)
	}

	var goals []models.Goal
	if err := q.Order("created_at desc").Find(&goals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to list goals")
		return
	}
	utils.Success(ctx, goals)
}

// Create validates and stores a new goal.
func (g *GoalController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var req goalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	if req.Type == "" {
		req.Type = models.GoalTypeHabit
	}
	if !models.ValidType(req.Type) {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid goal type")
		return
	}
	if req.Type == models.GoalTypeTarget && req.TargetValue <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40012, "target goals require a positive target_value")
		return
	}

	goal := models.Goal{
		UserID:      userID,
		Title:       utils.StripTags(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		Category:    utils.StripTags(strings.TrimSpace(req.Category)),
		Type:        req.Type,
		TargetValue: req.TargetValue,
	}
	if goal.Title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40013, "title must not be empty")
		return
	}

	if err := g.db.Create(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to create goal")
		return
	}
	utils.Created(ctx, goal)
}

// Get returns a single owned goal.
func (g *GoalController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var goal models.Goal
	if !loadOwnedGoal(ctx, g.db, userID, &goal) {
		return
	}
	utils.Success(ctx, goal)
}

// Update edits title, description, category and target value. The goal type
// is immutable once created because streak and progress fields are only
// meaningful for the type they were accumulated under.
func (g *GoalController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var goal models.Goal
	if !loadOwnedGoal(ctx, g.db, userID, &goal) {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		TargetValue *int    `json:"target_value"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	if req.Title != nil {
		title := utils.StripTags(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Error(ctx, http.StatusBadRequest, 40013, "title must not be empty")
			return
		}
		goal.Title = title
	}
	if req.Description != nil {
		goal.Description = utils.Sanitize(*req.Description)
	}
	if req.Category != nil {
		goal.Category = utils.StripTags(strings.TrimSpace(*req.Category))
	}
	if req.TargetValue != nil {
		if goal.Type != models.GoalTypeTarget {
			utils.Error(ctx, http.StatusBadRequest, 40014, "target_value only applies to target goals")
			return
		}
		if *req.TargetValue <= 0 {
			utils.Error(ctx, http.StatusBadRequest, 40012, "target goals require a positive target_value")
			return
		}
		goal.TargetValue = *req.TargetValue
		// Raising the target can re-open a completed goal.
		if goal.CurrentValue < goal.TargetValue {
			goal.CompletedAt = nil
		}
	}

	if err := g.db.Save(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to update goal")
		return
	}
	utils.InvalidateByPrefix(insightsCachePrefix(userID))
	utils.Success(ctx, goal)
}

// Delete soft-deletes a goal. Check-in history stays in place for aggregate
// badge counters.
func (g *GoalController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var goal models.Goal
	if !loadOwnedGoal(ctx, g.db, userID, &goal) {
		return
	}

	if err := g.db.Delete(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to delete goal")
		return
	}
	utils.InvalidateByPrefix(insightsCachePrefix(userID))
	utils.Success(ctx, gin.H{"deleted": goal.ID})
}

// Complete marks a one_time goal as done. Target goals complete automatically
// when check-ins reach the target; habit goals never complete.
func (g *GoalController) Complete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var goal models.Goal
	if !loadOwnedGoal(ctx, g.db, userID, &goal) {
		return
	}

	if goal.Type != models.GoalTypeOneTime {
		utils.Error(ctx, http.StatusBadRequest, 40015, "only one_time goals can be completed directly")
		return
	}
	if goal.Completed() {
		utils.Error(ctx, http.StatusBadRequest, 40016, "goal already completed")
		return
	}

	now := time.Now()
	goal.CompletedAt = &now
	if err := g.db.Save(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to update goal")
		return
	}

	badges := checkAndAwardBadges(g.db, userID, &goal.ID, 0)
	utils.InvalidateByPrefix(insightsCachePrefix(userID))

	utils.Success(ctx, gin.H{"goal": goal, "new_badges": badges})
}

// Archive hides a goal from active views without losing history.
func (g *GoalController) Archive(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var goal models.Goal
	if !loadOwnedGoal(ctx, g.db, userID, &goal) {
		return
	}

	goal.Archived = !goal.Archived
	if err := g.db.Save(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to update goal")
		return
	}
	utils.InvalidateByPrefix(insightsCachePrefix(userID))
	utils.Success(ctx, goal)
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stridehq/stride/engine"
	"github.com/stridehq/stride/models"
	"github.com/stridehq/stride/utils"
)

// BadgeController exposes the badge catalog and per-user award state.
type BadgeController struct {
	db *gorm.DB
}

// NewBadgeController creates a new BadgeController instance.
func NewBadgeController(db *gorm.DB) *BadgeController {
	return &BadgeController{db: db}
}

// Catalog returns the full badge catalog. Public and cacheable.
func (b *BadgeController) Catalog(ctx *gin.Context) {
	const cacheKey = "cache:badges:catalog"
	if raw, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", raw)
		return
	}

	var catalog []models.Badge
	if err := b.db.Order("criteria_type asc, criteria_value asc").Find(&catalog).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load badge catalog")
		return
	}

	payload := utils.JSONResponse{Code: 0, Message: "success", Data: catalog}
	utils.CacheSetJSON(cacheKey, payload, 0)
	ctx.JSON(http.StatusOK, payload)
}

// Mine lists the caller's earned badges, newest first.
func (b *BadgeController) Mine(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var earned []models.UserBadge
	if err := b.db.Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at desc").
		Find(&earned).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load badges")
		return
	}
	utils.Success(ctx, earned)
}

// Progress reports the caller's completion percentage toward every unearned
// badge, plus the earned set.
func (b *BadgeController) Progress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var catalog []models.Badge
	if err := b.db.Order("criteria_type asc, criteria_value asc").Find(&catalog).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load badge catalog")
		return
	}

	var userBadges []models.UserBadge
	if err := b.db.Where("user_id = ?", userID).Find(&userBadges).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load badges")
		return
	}
	earned := make(map[uint]time.Time, len(userBadges))
	for _, ub := range userBadges {
		earned[ub.BadgeID] = ub.EarnedAt
	}

	bctx := badgeContext(b.db, userID, 0)

	type progressRow struct {
		Badge    models.Badge `json:"badge"`
		Earned   bool         `json:"earned"`
		EarnedAt *time.Time   `json:"earned_at,omitempty"`
		Current  int          `json:"current"`
		Percent  float64      `json:"percent"`
	}

	rows := make([]progressRow, 0, len(catalog))
	for _, badge := range catalog {
		row := progressRow{Badge: badge}
		if at, ok := earned[badge.ID]; ok {
			row.Earned = true
			earnedAt := at
			row.EarnedAt = &earnedAt
			row.Current = badge.CriteriaValue
			row.Percent = 100
		} else {
			row.Current, row.Percent = engine.BadgeProgress(badge.CriteriaType, badge.CriteriaValue, bctx)
		}
		rows = append(rows, row)
	}

	utils.Success(ctx, rows)
}

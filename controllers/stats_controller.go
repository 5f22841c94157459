package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stridehq/stride/models"
	"github.com/stridehq/stride/utils"
)

// StatsController provides public aggregate statistics.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate counts for the service.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var goalCount int64
	var checkInCount int64
	var checkInsToday int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}

	if err := s.db.Model(&models.Goal{}).Count(&goalCount).Error; err != nil {
		goalCount = 0
	}

	if err := s.db.Model(&models.CheckIn{}).Count(&checkInCount).Error; err != nil {
		checkInCount = 0
	}

	// Server-local day; close enough for a public counter that never feeds
	// streak math.
	midnight := time.Now().Truncate(24 * time.Hour)
	if err := s.db.Model(&models.CheckIn{}).
		Where("occurred_at >= ?", midnight).
		Count(&checkInsToday).Error; err != nil {
		checkInsToday = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":      userCount,
		"goal_count":      goalCount,
		"check_in_count":  checkInCount,
		"check_ins_today": checkInsToday,
	})
}

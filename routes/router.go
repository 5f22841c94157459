package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stridehq/stride/config"
	"github.com/stridehq/stride/controllers"
	"github.com/stridehq/stride/middleware"
	"github.com/stridehq/stride/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	goalController := controllers.NewGoalController(db)
	checkInController := controllers.NewCheckInController(db)
	freezeController := controllers.NewFreezeController(db)
	badgeController := controllers.NewBadgeController(db)
	insightsController := controllers.NewInsightsController(db)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/oauth/github/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/github/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	goals := api.Group("/goals")
	goals.Use(middleware.AuthRequired())
	goals.GET("", goalController.List)
	goals.POST("", goalController.Create)
	goals.GET("/:id", goalController.Get)
	goals.PUT("/:id", goalController.Update)
	goals.DELETE("/:id", goalController.Delete)
	goals.POST("/:id/complete", goalController.Complete)
	goals.POST("/:id/archive", goalController.Archive)
	goals.POST("/:id/checkins", middleware.RateLimitMiddleware(), checkInController.Create)
	goals.GET("/:id/checkins", checkInController.List)
	goals.GET("/:id/streak", checkInController.GetStreak)
	goals.GET("/:id/freeze", freezeController.Status)
	goals.POST("/:id/freeze/activate", freezeController.Activate)
	goals.GET("/:id/insights", insightsController.GoalInsights)

	api.DELETE("/checkins/:id", middleware.AuthRequired(), checkInController.Delete)

	badges := api.Group("/badges")
	badges.GET("", badgeController.Catalog)
	badges.GET("/mine", middleware.AuthRequired(), badgeController.Mine)
	badges.GET("/progress", middleware.AuthRequired(), badgeController.Progress)

	insights := api.Group("/insights")
	insights.Use(middleware.AuthRequired())
	insights.GET("/dashboard", insightsController.Dashboard)
	insights.GET("/weekly-summary", insightsController.WeeklySummary)

	// Public stats endpoint
	api.GET("/stats", statsController.GetStats)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, 404, 40400, "route not found")
	})

	return r
}

package main

import (
	"time"

	"github.com/stridehq/stride/config"
	"github.com/stridehq/stride/models"
	"github.com/stridehq/stride/routes"
	"github.com/stridehq/stride/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Goal{},
		&models.CheckIn{},
		&models.StreakFreeze{},
		&models.Badge{},
		&models.UserBadge{},
	)
	config.SeedBadgeCatalog(db)

	r := routes.SetupRouter(db)

	// Enqueue streak warnings for goals about to lose their streak (best-effort)
	utils.StartStreakWarningScanner(time.Duration(cfg.ReminderIntervalMinutes) * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

package main

import (
	"github.com/helthtracer/backend/config"
	"github.com/helthtracer/backend/models"
	"github.com/helthtracer/backend/routes"
	"github.com/helthtracer/backend/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Habit{},
		&models.HabitLog{},
		&models.SleepSession{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

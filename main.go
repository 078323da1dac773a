package main

import (
	"github.com/studyhive/studyhive/config"
	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/routes"
	"github.com/studyhive/studyhive/scheduler"
	"github.com/studyhive/studyhive/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Subject{},
		&models.StudyBlock{},
		&models.Note{},
		&models.Goal{},
		&models.GoalStep{},
		&models.RevisionPlan{},
		&models.StudySession{},
		&models.UserStats{},
		&models.Achievement{},
		&models.DailyChallenge{},
		&models.Companion{},
		&models.Preference{},
	)

	r := routes.SetupRouter(db)

	// Nightly maintenance: expired challenge purge, orphan pruning
	jobs := scheduler.New(db)
	jobs.Start()
	defer jobs.Stop()

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

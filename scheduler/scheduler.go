// Package scheduler runs the app's background maintenance jobs.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

// Challenges that expired without being completed are kept for a week so
// recent history still shows them, then swept.
const challengeRetention = 7 * 24 * time.Hour

// Scheduler owns the gocron instance and the jobs it runs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *gorm.DB
}

// New creates a scheduler bound to the application database.
func New(db *gorm.DB) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		db:        db,
	}
}

// Start registers the nightly maintenance job and runs the scheduler in the
// background. Jobs are best effort and never take the process down.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At("03:30").Do(s.nightlyMaintenance)
	s.scheduler.StartAsync()
}

// Stop halts all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) nightlyMaintenance() {
	s.purgeExpiredChallenges()
	s.pruneOrphanedRows()
}

func (s *Scheduler) purgeExpiredChallenges() {
	cutoff := time.Now().Add(-challengeRetention)
	res := s.db.Where("completed = ? AND expires_at < ?", false, cutoff).
		Delete(&models.DailyChallenge{})
	if res.Error != nil {
		utils.Sugar.Warnw("challenge purge failed", "error", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		utils.Sugar.Infow("purged expired challenges", "count", res.RowsAffected)
	}
}

// pruneOrphanedRows removes per-user rows whose owning user is gone.
func (s *Scheduler) pruneOrphanedRows() {
	targets := []interface{}{
		&models.Subject{},
		&models.StudyBlock{},
		&models.Note{},
		&models.Goal{},
		&models.RevisionPlan{},
		&models.StudySession{},
		&models.UserStats{},
		&models.Achievement{},
		&models.DailyChallenge{},
		&models.Companion{},
		&models.Preference{},
	}
	for _, model := range targets {
		res := s.db.Where("user_id NOT IN (?)",
			s.db.Model(&models.User{}).Select("id")).Delete(model)
		if res.Error != nil {
			utils.Sugar.Warnw("orphan prune failed", "error", res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			utils.Sugar.Infow("pruned orphaned rows", "count", res.RowsAffected)
		}
	}

	// Steps hang off goals, not users, so they need their own pass once
	// orphaned goals are gone.
	res := s.db.Where("goal_id NOT IN (?)",
		s.db.Model(&models.Goal{}).Select("id")).Delete(&models.GoalStep{})
	if res.Error != nil {
		utils.Sugar.Warnw("orphan step prune failed", "error", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		utils.Sugar.Infow("pruned orphaned goal steps", "count", res.RowsAffected)
	}
}

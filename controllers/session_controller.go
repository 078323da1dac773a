package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/gamify"
	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/planner"
	"github.com/studyhive/studyhive/utils"
)

// Achievements seeded for every user. Unlock conditions are evaluated on
// session completion and never revoked.
var seedAchievements = []models.Achievement{
	{Name: "First Steps", Description: "Complete your first study session"},
	{Name: "Dedicated Scholar", Description: "Study for 10 hours in total"},
	{Name: "Week Warrior", Description: "Keep a 7 day study streak"},
	{Name: "Knowledge Master", Description: "Reach level 10"},
}

// SessionController owns timed study sessions and the gamification ledger
// they feed: stats, streaks, levels and achievements.
type SessionController struct {
	db *gorm.DB
}

// NewSessionController creates a new controller instance.
func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{db: db}
}

// loadStats fetches the caller's ledger row, creating it on first touch.
func loadStats(tx *gorm.DB, userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	err := tx.Where("user_id = ?", userID).First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		stats = models.UserStats{UserID: userID, Level: 1}
		err = tx.Create(&stats).Error
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// seedUserAchievements inserts any badge the user does not have yet.
func seedUserAchievements(tx *gorm.DB, userID uint) error {
	var existing []models.Achievement
	if err := tx.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, a := range existing {
		have[a.Name] = true
	}
	for _, seed := range seedAchievements {
		if have[seed.Name] {
			continue
		}
		a := seed
		a.UserID = userID
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
	}
	return nil
}

// unlockAchievement sets the badge once; already-unlocked rows are untouched.
func unlockAchievement(tx *gorm.DB, userID uint, name string, now time.Time) error {
	return tx.Model(&models.Achievement{}).
		Where("user_id = ? AND name = ? AND unlocked = ?", userID, name, false).
		Updates(map[string]interface{}{"unlocked": true, "unlocked_at": now}).Error
}

// StartSession opens a session with zero duration.
func (s *SessionController) StartSession(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		SubjectID *uint `json:"subject_id"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid request payload")
		return
	}

	session := models.StudySession{
		UserID:    userID,
		SubjectID: req.SubjectID,
		StartedAt: time.Now(),
	}
	if err := s.db.Create(&session).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to start session")
		return
	}

	utils.Success(ctx, gin.H{"session": session})
}

// CompleteSession closes a session and applies the full ledger update:
// duration and XP on the session, streak, XP totals, level-ups and
// achievement checks, all in one transaction.
func (s *SessionController) CompleteSession(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Duration int `json:"duration" binding:"required"`
		XPEarned int `json:"xp_earned"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40071, "invalid request payload")
		return
	}
	if req.Duration < 1 {
		utils.Error(ctx, http.StatusBadRequest, 40072, "duration must be positive")
		return
	}
	if req.XPEarned < 0 {
		utils.Error(ctx, http.StatusBadRequest, 40073, "xp_earned cannot be negative")
		return
	}

	var session models.StudySession
	var stats *models.UserStats
	now := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&session, ctx.Param("id")).Error; err != nil {
			return err
		}
		if session.Completed {
			return errSessionDone
		}

		session.Duration = req.Duration
		session.XPEarned = req.XPEarned
		session.Completed = true
		session.EndedAt = &now
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		var err error
		stats, err = loadStats(tx, userID)
		if err != nil {
			return err
		}

		stats.StudyStreak = gamify.NextStreak(stats.StudyStreak, stats.LastStudyDate, now)
		stats.CurrentXP += req.XPEarned
		stats.TotalXP += req.XPEarned
		stats.Level = gamify.ApplyLevelUps(stats.Level, stats.CurrentXP)
		today := planner.Midnight(now)
		stats.LastStudyDate = &today
		if err := tx.Save(stats).Error; err != nil {
			return err
		}

		if err := seedUserAchievements(tx, userID); err != nil {
			return err
		}

		var sessionCount int64
		if err := tx.Model(&models.StudySession{}).
			Where("user_id = ? AND completed = ?", userID, true).
			Count(&sessionCount).Error; err != nil {
			return err
		}
		var totalMinutes int64
		if err := tx.Model(&models.StudySession{}).
			Where("user_id = ? AND completed = ?", userID, true).
			Select("COALESCE(SUM(duration), 0)").Scan(&totalMinutes).Error; err != nil {
			return err
		}

		if sessionCount == 1 {
			if err := unlockAchievement(tx, userID, "First Steps", now); err != nil {
				return err
			}
		}
		if totalMinutes >= 600 {
			if err := unlockAchievement(tx, userID, "Dedicated Scholar", now); err != nil {
				return err
			}
		}
		if stats.StudyStreak >= 7 {
			if err := unlockAchievement(tx, userID, "Week Warrior", now); err != nil {
				return err
			}
		}
		if stats.Level >= 10 {
			if err := unlockAchievement(tx, userID, "Knowledge Master", now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			utils.Error(ctx, http.StatusNotFound, 40470, "session not found")
		case errSessionDone:
			utils.Error(ctx, http.StatusConflict, 40970, "session already completed")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to complete session")
		}
		return
	}

	utils.Success(ctx, gin.H{
		"session":          session,
		"stats":            stats,
		"xp_to_next_level": gamify.XPForLevel(stats.Level),
	})
}

// ListSessions returns sessions newest first.
func (s *SessionController) ListSessions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var sessions []models.StudySession
	if err := s.db.Where("user_id = ?", userID).Order("started_at DESC").Find(&sessions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to list sessions")
		return
	}

	utils.Success(ctx, gin.H{"items": sessions})
}

// GetStats returns the ledger row, creating it on first read.
func (s *SessionController) GetStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	stats, err := loadStats(s.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to load stats")
		return
	}

	utils.Success(ctx, statsView(stats))
}

// ListAchievements seeds missing badges then returns them all.
func (s *SessionController) ListAchievements(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := seedUserAchievements(s.db, userID); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50074, "failed to seed achievements")
		return
	}

	var achievements []models.Achievement
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&achievements).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50075, "failed to list achievements")
		return
	}

	utils.Success(ctx, gin.H{"items": achievements})
}

func statsView(stats *models.UserStats) gin.H {
	return gin.H{
		"stats":            stats,
		"xp_to_next_level": gamify.XPForLevel(stats.Level),
	}
}

// errSessionDone marks a double completion inside the transaction.
var errSessionDone = errors.New("session already completed")

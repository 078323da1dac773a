package controllers

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/gamify"
	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

// The fixed pool a fresh daily challenge is drawn from.
var challengePool = []models.DailyChallenge{
	{Title: "Quick Sprint", Description: "Study for 25 minutes without a break", XP: 50},
	{Title: "Deep Dive", Description: "Complete a full hour on one subject", XP: 120},
	{Title: "Note Taker", Description: "Write a study note about today's topic", XP: 40},
	{Title: "Early Bird", Description: "Finish a study session before noon", XP: 60},
	{Title: "Review Round", Description: "Complete one revision from your planner", XP: 70},
	{Title: "Goal Getter", Description: "Tick off a step on any goal", XP: 45},
}

// ChallengeController draws and settles daily challenges.
type ChallengeController struct {
	db *gorm.DB
}

// NewChallengeController creates a new controller instance.
func NewChallengeController(db *gorm.DB) *ChallengeController {
	return &ChallengeController{db: db}
}

// Today returns the user's current unexpired challenge, drawing a fresh one
// when none exists. A short Redis lock keeps two concurrent first reads from
// drawing twice; without Redis the unique re-check inside the transaction
// still bounds the damage to one extra row.
func (c *ChallengeController) Today(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now()
	var challenge models.DailyChallenge
	err := c.db.Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at DESC").First(&challenge).Error
	if err == nil {
		utils.Success(ctx, gin.H{"challenge": challenge})
		return
	}
	if err != gorm.ErrRecordNotFound {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load challenge")
		return
	}

	release := acquireDrawLock(userID)
	defer release()

	// Another request may have drawn while this one waited on the lock.
	err = c.db.Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at DESC").First(&challenge).Error
	if err == nil {
		utils.Success(ctx, gin.H{"challenge": challenge})
		return
	}
	if err != gorm.ErrRecordNotFound {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load challenge")
		return
	}

	pick := challengePool[rand.Intn(len(challengePool))]
	challenge = models.DailyChallenge{
		UserID:      userID,
		Title:       pick.Title,
		Description: pick.Description,
		XP:          pick.XP,
		ExpiresAt:   now.Add(24 * time.Hour),
	}
	if err := c.db.Create(&challenge).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to draw challenge")
		return
	}

	utils.Success(ctx, gin.H{"challenge": challenge})
}

// Complete settles a challenge and credits its XP to the ledger. Completing
// twice is a conflict.
func (c *ChallengeController) Complete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var challenge models.DailyChallenge
	var stats *models.UserStats
	now := time.Now()

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&challenge, ctx.Param("id")).Error; err != nil {
			return err
		}
		if challenge.Completed {
			return errChallengeDone
		}
		if now.After(challenge.ExpiresAt) {
			return errChallengeExpired
		}

		challenge.Completed = true
		challenge.CompletedAt = &now
		if err := tx.Save(&challenge).Error; err != nil {
			return err
		}

		var err error
		stats, err = loadStats(tx, userID)
		if err != nil {
			return err
		}
		stats.CurrentXP += challenge.XP
		stats.TotalXP += challenge.XP
		stats.Level = gamify.ApplyLevelUps(stats.Level, stats.CurrentXP)
		return tx.Save(stats).Error
	})
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			utils.Error(ctx, http.StatusNotFound, 40480, "challenge not found")
		case errChallengeDone:
			utils.Error(ctx, http.StatusConflict, 40980, "challenge already completed")
		case errChallengeExpired:
			utils.Error(ctx, http.StatusConflict, 40981, "challenge expired")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to complete challenge")
		}
		return
	}

	utils.Success(ctx, gin.H{
		"challenge":        challenge,
		"stats":            stats,
		"xp_to_next_level": gamify.XPForLevel(stats.Level),
	})
}

var (
	errChallengeDone    = fmt.Errorf("challenge already completed")
	errChallengeExpired = fmt.Errorf("challenge expired")
)

// acquireDrawLock takes a short per-user SETNX lock; the returned func
// releases it. Both steps degrade to no-ops when Redis is unreachable.
func acquireDrawLock(userID uint) func() {
	rc := utils.GetRedis()
	if rc == nil {
		return func() {}
	}
	key := fmt.Sprintf("lock:challenge:draw:%d", userID)
	lctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < 20; i++ {
		ok, err := rc.SetNX(lctx, key, 1, 5*time.Second).Result()
		if err != nil {
			return func() {}
		}
		if ok {
			return func() {
				dctx, dcancel := context.WithTimeout(context.Background(), time.Second)
				defer dcancel()
				rc.Del(dctx, key)
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return func() {}
}

package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive/studyhive/models"
)

type sessionResp struct {
	Session       models.StudySession `json:"session"`
	Stats         *models.UserStats   `json:"stats"`
	XPToNextLevel int                 `json:"xp_to_next_level"`
}

func startSession(t *testing.T, r *gin.Engine) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/sessions", nil)
	var resp sessionResp
	decodeData(t, w, &resp)
	return resp.Session.ID
}

func finishSession(t *testing.T, r *gin.Engine, id uint, minutes, xp int) sessionResp {
	t.Helper()
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/sessions/%d/complete", id),
		map[string]interface{}{"duration": minutes, "xp_earned": xp})
	var resp sessionResp
	decodeData(t, w, &resp)
	return resp
}

func TestCompleteSessionUpdatesLedger(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	id := startSession(t, r)
	resp := finishSession(t, r, id, 30, 60)

	assert.True(t, resp.Session.Completed)
	assert.Equal(t, 30, resp.Session.Duration)
	require.NotNil(t, resp.Session.EndedAt)
	require.NotNil(t, resp.Stats)
	assert.Equal(t, 60, resp.Stats.CurrentXP)
	assert.Equal(t, 60, resp.Stats.TotalXP)
	assert.Equal(t, 1, resp.Stats.Level)
	assert.Equal(t, 1, resp.Stats.StudyStreak)
	require.NotNil(t, resp.Stats.LastStudyDate)
	assert.Equal(t, time.Now().Format("2006-01-02"), resp.Stats.LastStudyDate.Format("2006-01-02"))
	assert.Equal(t, 100, resp.XPToNextLevel)
}

func TestCompleteSessionTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	id := startSession(t, r)
	finishSession(t, r, id, 30, 10)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/sessions/%d/complete", id),
		map[string]interface{}{"duration": 30, "xp_earned": 10})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStreakTransitions(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	// First ever session starts the streak at 1.
	resp := finishSession(t, r, startSession(t, r), 25, 10)
	assert.Equal(t, 1, resp.Stats.StudyStreak)

	// Same-day completion leaves the streak alone.
	resp = finishSession(t, r, startSession(t, r), 25, 10)
	assert.Equal(t, 1, resp.Stats.StudyStreak)

	// Last study yesterday extends it.
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&models.UserStats{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{"study_streak": 4, "last_study_date": yesterday}).Error)
	resp = finishSession(t, r, startSession(t, r), 25, 10)
	assert.Equal(t, 5, resp.Stats.StudyStreak)

	// A longer gap resets to 1.
	lastWeek := time.Now().AddDate(0, 0, -6)
	require.NoError(t, db.Model(&models.UserStats{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{"study_streak": 9, "last_study_date": lastWeek}).Error)
	resp = finishSession(t, r, startSession(t, r), 25, 10)
	assert.Equal(t, 1, resp.Stats.StudyStreak)
}

func TestLevelUpsRollThroughThresholds(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	// 500 XP clears level 1 (100) and level 2 (400), landing on 3.
	resp := finishSession(t, r, startSession(t, r), 60, 500)
	assert.Equal(t, 3, resp.Stats.Level)
	assert.Equal(t, 900, resp.XPToNextLevel)

	// 300 more keeps the level; 800 < 900.
	resp = finishSession(t, r, startSession(t, r), 60, 300)
	assert.Equal(t, 3, resp.Stats.Level)

	// Crossing 900 advances exactly once.
	resp = finishSession(t, r, startSession(t, r), 60, 150)
	assert.Equal(t, 4, resp.Stats.Level)
}

func TestFirstStepsUnlocksOnExactlyFirstSession(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	finishSession(t, r, startSession(t, r), 30, 10)

	var first models.Achievement
	require.NoError(t, db.Where("user_id = ? AND name = ?", userID, "First Steps").First(&first).Error)
	assert.True(t, first.Unlocked)
	require.NotNil(t, first.UnlockedAt)
	unlockedAt := *first.UnlockedAt

	// A second completion leaves the original unlock timestamp alone.
	finishSession(t, r, startSession(t, r), 30, 10)
	require.NoError(t, db.Where("user_id = ? AND name = ?", userID, "First Steps").First(&first).Error)
	assert.True(t, first.Unlocked)
	assert.WithinDuration(t, unlockedAt, *first.UnlockedAt, time.Second)
}

func TestDedicatedScholarAtTenHours(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	finishSession(t, r, startSession(t, r), 599, 10)
	var badge models.Achievement
	require.NoError(t, db.Where("user_id = ? AND name = ?", userID, "Dedicated Scholar").First(&badge).Error)
	assert.False(t, badge.Unlocked)

	finishSession(t, r, startSession(t, r), 1, 10)
	require.NoError(t, db.Where("user_id = ? AND name = ?", userID, "Dedicated Scholar").First(&badge).Error)
	assert.True(t, badge.Unlocked)
}

func TestStatsLazyProvisioning(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	w := doJSON(t, r, http.MethodGet, "/stats", nil)
	var resp struct {
		Stats         models.UserStats `json:"stats"`
		XPToNextLevel int              `json:"xp_to_next_level"`
	}
	decodeData(t, w, &resp)

	assert.Equal(t, userID, resp.Stats.UserID)
	assert.Equal(t, 1, resp.Stats.Level)
	assert.Equal(t, 0, resp.Stats.CurrentXP)
	assert.Nil(t, resp.Stats.LastStudyDate)
	assert.Equal(t, 100, resp.XPToNextLevel)
}

func TestAchievementsSeededOnFirstRead(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	w := doJSON(t, r, http.MethodGet, "/achievements", nil)
	var resp struct {
		Items []models.Achievement `json:"items"`
	}
	decodeData(t, w, &resp)

	require.Len(t, resp.Items, len(seedAchievements))
	for _, a := range resp.Items {
		assert.False(t, a.Unlocked)
		assert.Nil(t, a.UnlockedAt)
	}

	// Re-reading does not duplicate the seeds.
	decodeData(t, doJSON(t, r, http.MethodGet, "/achievements", nil), &resp)
	assert.Len(t, resp.Items, len(seedAchievements))
}

func TestCompleteSessionValidation(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))
	id := startSession(t, r)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/sessions/%d/complete", id),
		map[string]interface{}{"duration": 0, "xp_earned": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/sessions/%d/complete", id),
		map[string]interface{}{"duration": 10, "xp_earned": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/sessions/9999/complete",
		map[string]interface{}{"duration": 10, "xp_earned": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studyhive/studyhive/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:sched_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.DailyChallenge{}, &models.Subject{},
		&models.Goal{}, &models.GoalStep{}))
	return db
}

func TestPurgeExpiredChallenges(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Username: "ada"}
	require.NoError(t, db.Create(&user).Error)

	now := time.Now()
	challenges := []models.DailyChallenge{
		// Expired long ago and never completed: purged.
		{UserID: user.ID, Title: "stale", XP: 10, ExpiresAt: now.AddDate(0, 0, -10)},
		// Expired recently: kept within the retention window.
		{UserID: user.ID, Title: "recent", XP: 10, ExpiresAt: now.Add(-time.Hour)},
		// Old but completed: kept as history.
		{UserID: user.ID, Title: "done", XP: 10, Completed: true, ExpiresAt: now.AddDate(0, 0, -10)},
		// Still live: kept.
		{UserID: user.ID, Title: "live", XP: 10, ExpiresAt: now.Add(time.Hour)},
	}
	require.NoError(t, db.Create(&challenges).Error)

	New(db).purgeExpiredChallenges()

	var remaining []models.DailyChallenge
	require.NoError(t, db.Find(&remaining).Error)
	titles := make([]string, 0, len(remaining))
	for _, c := range remaining {
		titles = append(titles, c.Title)
	}
	assert.ElementsMatch(t, []string{"recent", "done", "live"}, titles)
}

func TestPruneOrphanedRows(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Username: "ada"}
	require.NoError(t, db.Create(&user).Error)

	subjects := []models.Subject{
		{UserID: user.ID, Name: "kept", TotalChapters: 1},
		{UserID: user.ID + 100, Name: "orphan", TotalChapters: 1},
	}
	require.NoError(t, db.Create(&subjects).Error)

	New(db).pruneOrphanedRows()

	var remaining []models.Subject
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "kept", remaining[0].Name)
}

func TestPruneOrphanedGoalSteps(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Username: "ada"}
	require.NoError(t, db.Create(&user).Error)

	kept := models.Goal{UserID: user.ID, Title: "kept"}
	orphaned := models.Goal{UserID: user.ID + 100, Title: "orphan"}
	require.NoError(t, db.Create(&kept).Error)
	require.NoError(t, db.Create(&orphaned).Error)

	steps := []models.GoalStep{
		{GoalID: kept.ID, Title: "survives"},
		{GoalID: orphaned.ID, Title: "goes with its goal"},
	}
	require.NoError(t, db.Create(&steps).Error)

	New(db).pruneOrphanedRows()

	var remaining []models.GoalStep
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "survives", remaining[0].Title)
	assert.Equal(t, kept.ID, remaining[0].GoalID)
}

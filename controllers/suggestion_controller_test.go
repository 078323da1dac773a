package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/planner"
)

type suggestionListResp struct {
	Items []suggestion `json:"items"`
}

func suggestionsByType(items []suggestion, kind string) []suggestion {
	out := []suggestion{}
	for _, s := range items {
		if s.Type == kind {
			out = append(out, s)
		}
	}
	return out
}

func TestSuggestionsForFreshUser(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	var resp suggestionListResp
	decodeData(t, doJSON(t, r, http.MethodGet, "/suggestions", nil), &resp)

	// Nothing to study yet except the streak nudge.
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "streak", resp.Items[0].Type)
}

func TestLowProgressSubjectSuggested(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	subjects := []models.Subject{
		{UserID: userID, Name: "Math", TotalChapters: 10, CompletedChapters: 1},
		{UserID: userID, Name: "Physics", TotalChapters: 10, CompletedChapters: 2},
		{UserID: userID, Name: "Art", TotalChapters: 10, CompletedChapters: 9},
	}
	require.NoError(t, db.Create(&subjects).Error)

	var resp suggestionListResp
	decodeData(t, doJSON(t, r, http.MethodGet, "/suggestions", nil), &resp)

	got := suggestionsByType(resp.Items, "subject")
	require.Len(t, got, 1, "only the single furthest-behind subject is suggested")
	assert.Contains(t, got[0].Title, "Math")
}

func TestSubjectAboveThresholdNotSuggested(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	require.NoError(t, db.Create(&models.Subject{
		UserID: userID, Name: "Math", TotalChapters: 10, CompletedChapters: 3,
	}).Error)

	var resp suggestionListResp
	decodeData(t, doJSON(t, r, http.MethodGet, "/suggestions", nil), &resp)
	assert.Empty(t, suggestionsByType(resp.Items, "subject"))
}

func TestRevisionUrgency(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	today := planner.Midnight(time.Now())
	plans := []models.RevisionPlan{
		{UserID: userID, SubjectID: 1, Topic: "Due now", ReviewDate: today, Priority: "medium"},
		{UserID: userID, SubjectID: 1, Topic: "Soon", ReviewDate: today.AddDate(0, 0, 3), Priority: "medium"},
		{UserID: userID, SubjectID: 1, Topic: "Far", ReviewDate: today.AddDate(0, 0, 10), Priority: "medium"},
	}
	require.NoError(t, db.Create(&plans).Error)

	var resp suggestionListResp
	decodeData(t, doJSON(t, r, http.MethodGet, "/suggestions", nil), &resp)

	got := suggestionsByType(resp.Items, "revision")
	require.Len(t, got, 2, "plans beyond three days stay out")
	assert.Equal(t, "high", got[0].Urgency)
	assert.Equal(t, "medium", got[1].Urgency)
}

func TestGoalDeadlineUrgency(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	now := time.Now()
	goals := []models.Goal{
		{UserID: userID, Title: "Urgent", Deadline: now.AddDate(0, 0, 1)},
		{UserID: userID, Title: "Close", Deadline: now.AddDate(0, 0, 6)},
		{UserID: userID, Title: "Distant", Deadline: now.AddDate(0, 0, 30)},
		{UserID: userID, Title: "Done", Deadline: now.AddDate(0, 0, 1), Completed: true},
	}
	require.NoError(t, db.Create(&goals).Error)

	var resp suggestionListResp
	decodeData(t, doJSON(t, r, http.MethodGet, "/suggestions", nil), &resp)

	got := suggestionsByType(resp.Items, "goal")
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].Urgency)
	assert.Contains(t, got[0].Title, "Urgent")
	assert.Equal(t, "medium", got[1].Urgency)
}

func TestOverdueGoalPhrasedAsPassed(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	goal := models.Goal{UserID: userID, Title: "Late", Deadline: time.Now().AddDate(0, 0, -3)}
	require.NoError(t, db.Create(&goal).Error)

	var resp suggestionListResp
	decodeData(t, doJSON(t, r, http.MethodGet, "/suggestions", nil), &resp)

	got := suggestionsByType(resp.Items, "goal")
	require.Len(t, got, 1)
	assert.Equal(t, "high", got[0].Urgency)
	assert.Contains(t, got[0].Detail, "Deadline passed 3 days ago")
	assert.NotContains(t, got[0].Detail, "-")
}

func TestNoStreakNudgeAfterStudyingToday(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	today := planner.Midnight(time.Now())
	require.NoError(t, db.Create(&models.UserStats{
		UserID: userID, Level: 1, StudyStreak: 3, LastStudyDate: &today,
	}).Error)

	var resp suggestionListResp
	decodeData(t, doJSON(t, r, http.MethodGet, "/suggestions", nil), &resp)
	assert.Empty(t, suggestionsByType(resp.Items, "streak"))
}

package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive/studyhive/models"
)

func TestCreateSubjectStartsAtZero(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	w := doJSON(t, r, http.MethodPost, "/subjects", map[string]interface{}{
		"name":           "Mathematics",
		"color":          "#ff8800",
		"total_chapters": 12,
	})
	var resp struct {
		Subject models.Subject `json:"subject"`
	}
	decodeData(t, w, &resp)

	assert.Equal(t, "Mathematics", resp.Subject.Name)
	assert.Equal(t, 12, resp.Subject.TotalChapters)
	assert.Equal(t, 0, resp.Subject.CompletedChapters)
	assert.Equal(t, 0, resp.Subject.Progress)
}

func TestCreateSubjectRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"total_chapters": 5}},
		{"blank name", map[string]interface{}{"name": "   ", "total_chapters": 5}},
		{"zero chapters", map[string]interface{}{"name": "Physics", "total_chapters": 0}},
		{"negative chapters", map[string]interface{}{"name": "Physics", "total_chapters": -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/subjects", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSetChapterCompletionClampsAndRounds(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	subject := models.Subject{UserID: userID, Name: "Chemistry", TotalChapters: 3}
	require.NoError(t, db.Create(&subject).Error)

	// Over-count clamps to total, progress lands on 100.
	w := doJSON(t, r, http.MethodPatch, "/subjects/1/chapters", map[string]interface{}{
		"completed_chapters": 7,
		"total_chapters":     3,
	})
	var resp struct {
		Subject models.Subject `json:"subject"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, 3, resp.Subject.CompletedChapters)
	assert.Equal(t, 100, resp.Subject.Progress)

	// Negative clamps to zero.
	w = doJSON(t, r, http.MethodPatch, "/subjects/1/chapters", map[string]interface{}{
		"completed_chapters": -2,
		"total_chapters":     3,
	})
	decodeData(t, w, &resp)
	assert.Equal(t, 0, resp.Subject.CompletedChapters)
	assert.Equal(t, 0, resp.Subject.Progress)

	// 1/3 rounds to 33, 2/3 rounds to 67.
	w = doJSON(t, r, http.MethodPatch, "/subjects/1/chapters", map[string]interface{}{
		"completed_chapters": 1,
		"total_chapters":     3,
	})
	decodeData(t, w, &resp)
	assert.Equal(t, 33, resp.Subject.Progress)

	w = doJSON(t, r, http.MethodPatch, "/subjects/1/chapters", map[string]interface{}{
		"completed_chapters": 2,
		"total_chapters":     3,
	})
	decodeData(t, w, &resp)
	assert.Equal(t, 67, resp.Subject.Progress)
}

func TestSubjectsAreScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	ada := seedUser(t, db, "ada")
	bob := seedUser(t, db, "bob")

	require.NoError(t, db.Create(&models.Subject{UserID: ada, Name: "Biology", TotalChapters: 4}).Error)

	w := doJSON(t, newTestRouter(db, bob), http.MethodPatch, "/subjects/1/chapters", map[string]interface{}{
		"completed_chapters": 1,
		"total_chapters":     4,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, newTestRouter(db, bob), http.MethodDelete, "/subjects/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSubjectKeepsBlocks(t *testing.T) {
	db := newTestDB(t)
	userID := seedUser(t, db, "ada")
	r := newTestRouter(db, userID)

	require.NoError(t, db.Create(&models.Subject{UserID: userID, Name: "History", TotalChapters: 4}).Error)
	block := models.StudyBlock{
		UserID:    userID,
		Subject:   "History",
		Topic:     "WW1",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&block).Error)

	w := doJSON(t, r, http.MethodDelete, "/subjects/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.StudyBlock{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 1, count)
}

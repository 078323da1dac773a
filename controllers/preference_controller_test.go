package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyhive/studyhive/models"
)

type prefResp struct {
	Preferences models.Preference `json:"preferences"`
}

func TestPreferencesDefaultWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	var resp prefResp
	decodeData(t, doJSON(t, r, http.MethodGet, "/preferences", nil), &resp)

	assert.Equal(t, "light", resp.Preferences.Theme)
	assert.Equal(t, "UTC", resp.Preferences.Timezone)
	assert.Equal(t, "medium", resp.Preferences.FontSize)
	assert.True(t, resp.Preferences.AnimationsEnabled)

	// Defaults are not persisted by a read.
	var count int64
	db.Model(&models.Preference{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestPreferencesUpsert(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	var resp prefResp
	decodeData(t, doJSON(t, r, http.MethodPut, "/preferences", map[string]interface{}{
		"theme":              "dark",
		"timezone":           "Europe/London",
		"animations_enabled": false,
	}), &resp)
	assert.Equal(t, "dark", resp.Preferences.Theme)
	assert.Equal(t, "Europe/London", resp.Preferences.Timezone)
	assert.False(t, resp.Preferences.AnimationsEnabled)
	// Untouched field keeps its default.
	assert.Equal(t, "medium", resp.Preferences.FontSize)

	// Partial update leaves the rest in place.
	decodeData(t, doJSON(t, r, http.MethodPut, "/preferences", map[string]interface{}{
		"font_size": "large",
	}), &resp)
	assert.Equal(t, "dark", resp.Preferences.Theme)
	assert.Equal(t, "large", resp.Preferences.FontSize)

	var count int64
	db.Model(&models.Preference{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPreferencesValidation(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db, seedUser(t, db, "ada"))

	w := doJSON(t, r, http.MethodPut, "/preferences", map[string]interface{}{"theme": "neon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/preferences", map[string]interface{}{"font_size": "giant"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

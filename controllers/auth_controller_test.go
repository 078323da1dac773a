package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/middleware"
	"github.com/studyhive/studyhive/models"
)

// newAuthRouter wires the auth endpoints with the real JWT middleware.
func newAuthRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	auth := NewAuthController(db)
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/logout", middleware.AuthRequired(), auth.Logout)
	r.GET("/auth/me", middleware.AuthRequired(), auth.Me)
	r.PATCH("/auth/profile", middleware.AuthRequired(), auth.UpdateProfile)
	return r
}

func doAuthed(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authResp struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func TestRegisterLoginAndMe(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doAuthed(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"username": "ada",
		"email":    "ada@example.com",
		"password": "lovelace",
	})
	var reg authResp
	decodeData(t, w, &reg)
	require.NotEmpty(t, reg.Token)
	assert.Equal(t, "ada", reg.User.Username)

	// Wrong password is rejected without telling which part failed.
	w = doAuthed(t, r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"username": "ada",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doAuthed(t, r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"username": "ada",
		"password": "lovelace",
	})
	var login authResp
	decodeData(t, w, &login)

	w = doAuthed(t, r, http.MethodGet, "/auth/me", login.Token, nil)
	var me struct {
		User models.User `json:"user"`
	}
	decodeData(t, w, &me)
	assert.Equal(t, "ada", me.User.Username)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	body := map[string]interface{}{"username": "ada", "password": "lovelace"}
	w := doAuthed(t, r, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doAuthed(t, r, http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doAuthed(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"username": "ada", "password": "lovelace",
	})
	var reg authResp
	decodeData(t, w, &reg)

	w = doAuthed(t, r, http.MethodPost, "/auth/logout", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doAuthed(t, r, http.MethodGet, "/auth/me", reg.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresToken(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doAuthed(t, r, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doAuthed(t, r, http.MethodGet, "/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doAuthed(t, r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"username": "ada", "password": "lovelace",
	})
	var reg authResp
	decodeData(t, w, &reg)

	w = doAuthed(t, r, http.MethodPatch, "/auth/profile", reg.Token, map[string]interface{}{
		"email":      "new@example.com",
		"avatar_url": "https://example.com/a.png",
	})
	var resp struct {
		User models.User `json:"user"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Equal(t, "https://example.com/a.png", resp.User.AvatarURL)
}

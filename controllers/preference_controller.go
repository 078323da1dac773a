package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

var (
	validThemes    = map[string]bool{"light": true, "dark": true}
	validFontSizes = map[string]bool{"small": true, "medium": true, "large": true}
)

// PreferenceController stores per-user display settings.
type PreferenceController struct {
	db *gorm.DB
}

// NewPreferenceController creates a new controller instance.
func NewPreferenceController(db *gorm.DB) *PreferenceController {
	return &PreferenceController{db: db}
}

func defaultPreference(userID uint) models.Preference {
	return models.Preference{
		UserID:            userID,
		Theme:             "light",
		Timezone:          "UTC",
		FontSize:          "medium",
		AnimationsEnabled: true,
	}
}

// Get returns stored preferences, or the defaults when the user has none.
func (p *PreferenceController) Get(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var pref models.Preference
	err := p.db.Where("user_id = ?", userID).First(&pref).Error
	if err == gorm.ErrRecordNotFound {
		pref = defaultPreference(userID)
	} else if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50100, "failed to load preferences")
		return
	}

	utils.Success(ctx, gin.H{"preferences": pref})
}

// Put upserts the preference row.
func (p *PreferenceController) Put(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Theme             *string `json:"theme"`
		Timezone          *string `json:"timezone"`
		FontSize          *string `json:"font_size"`
		AnimationsEnabled *bool   `json:"animations_enabled"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40100, "invalid request payload")
		return
	}

	var pref models.Preference
	err := p.db.Where("user_id = ?", userID).First(&pref).Error
	if err == gorm.ErrRecordNotFound {
		pref = defaultPreference(userID)
	} else if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50100, "failed to load preferences")
		return
	}

	if req.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*req.Theme))
		if !validThemes[theme] {
			utils.Error(ctx, http.StatusBadRequest, 40101, "theme must be light or dark")
			return
		}
		pref.Theme = theme
	}
	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if tz == "" {
			tz = "UTC"
		}
		pref.Timezone = tz
	}
	if req.FontSize != nil {
		size := strings.ToLower(strings.TrimSpace(*req.FontSize))
		if !validFontSizes[size] {
			utils.Error(ctx, http.StatusBadRequest, 40102, "font_size must be small, medium or large")
			return
		}
		pref.FontSize = size
	}
	if req.AnimationsEnabled != nil {
		pref.AnimationsEnabled = *req.AnimationsEnabled
	}

	if err := p.db.Save(&pref).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50101, "failed to save preferences")
		return
	}

	utils.Success(ctx, gin.H{"preferences": pref})
}

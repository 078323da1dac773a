package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

// SubjectController manages subjects and their chapter completion.
type SubjectController struct {
	db *gorm.DB
}

// NewSubjectController creates a new controller instance.
func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{db: db}
}

func subjectsCacheKey(userID uint) string {
	return fmt.Sprintf("cache:user:%d:subjects", userID)
}

// CreateSubject adds a subject with zero completed chapters.
func (s *SubjectController) CreateSubject(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Name          string `json:"name" binding:"required,min=1"`
		Color         string `json:"color"`
		TotalChapters int    `json:"total_chapters" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "name cannot be empty")
		return
	}
	if req.TotalChapters < 1 {
		utils.Error(ctx, http.StatusBadRequest, 40022, "total_chapters must be at least 1")
		return
	}

	subject := models.Subject{
		UserID:        userID,
		Name:          name,
		Color:         req.Color,
		TotalChapters: req.TotalChapters,
	}
	if err := s.db.Create(&subject).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create subject")
		return
	}
	subject.Progress = models.SubjectProgress(subject.CompletedChapters, subject.TotalChapters)

	utils.InvalidateByPrefix(subjectsCacheKey(userID))
	utils.Success(ctx, gin.H{"subject": subject})
}

// ListSubjects returns the caller's subjects, most recent first.
func (s *SubjectController) ListSubjects(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if b, ok := utils.CacheGetBytes(subjectsCacheKey(userID)); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var subjects []models.Subject
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&subjects).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list subjects")
		return
	}

	payload := gin.H{"items": subjects}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(subjectsCacheKey(userID), wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// SetChapterCompletion clamps completed to [0,total] and recomputes progress.
func (s *SubjectController) SetChapterCompletion(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		CompletedChapters int `json:"completed_chapters"`
		TotalChapters     int `json:"total_chapters" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid request payload")
		return
	}
	if req.TotalChapters < 1 {
		utils.Error(ctx, http.StatusBadRequest, 40022, "total_chapters must be at least 1")
		return
	}

	var subject models.Subject
	if err := s.db.Where("user_id = ?", userID).First(&subject, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "subject not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load subject")
		return
	}

	completed := req.CompletedChapters
	if completed < 0 {
		completed = 0
	}
	if completed > req.TotalChapters {
		completed = req.TotalChapters
	}

	subject.TotalChapters = req.TotalChapters
	subject.CompletedChapters = completed
	if err := s.db.Save(&subject).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to update subject")
		return
	}
	subject.Progress = models.SubjectProgress(subject.CompletedChapters, subject.TotalChapters)

	utils.InvalidateByPrefix(subjectsCacheKey(userID))
	utils.Success(ctx, gin.H{"subject": subject})
}

// UpdateSubject renames or recolors a subject.
func (s *SubjectController) UpdateSubject(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	var subject models.Subject
	if err := s.db.Where("user_id = ?", userID).First(&subject, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "subject not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load subject")
		return
	}

	if v := strings.TrimSpace(req.Name); v != "" {
		subject.Name = v
	}
	if v := strings.TrimSpace(req.Color); v != "" {
		subject.Color = v
	}
	if err := s.db.Save(&subject).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to update subject")
		return
	}
	subject.Progress = models.SubjectProgress(subject.CompletedChapters, subject.TotalChapters)

	utils.InvalidateByPrefix(subjectsCacheKey(userID))
	utils.Success(ctx, gin.H{"subject": subject})
}

// DeleteSubject removes a subject. Study blocks reference subjects by name
// and intentionally survive deletion.
func (s *SubjectController) DeleteSubject(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	res := s.db.Where("user_id = ?", userID).Delete(&models.Subject{}, ctx.Param("id"))
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to delete subject")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40420, "subject not found")
		return
	}

	utils.InvalidateByPrefix(subjectsCacheKey(userID))
	utils.Success(ctx, gin.H{"message": "subject deleted"})
}

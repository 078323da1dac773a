package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/planner"
	"github.com/studyhive/studyhive/utils"
)

// SuggestionController produces the rule-based dashboard suggestion list.
// Suggestions are derived on every call and never stored.
type SuggestionController struct {
	db *gorm.DB
}

// NewSuggestionController creates a new controller instance.
func NewSuggestionController(db *gorm.DB) *SuggestionController {
	return &SuggestionController{db: db}
}

type suggestion struct {
	Type    string `json:"type"`
	Urgency string `json:"urgency"`
	Title   string `json:"title"`
	Detail  string `json:"detail"`
}

// List assembles suggestions from four rules: the subject furthest behind,
// revisions coming due, goals near their deadline, and a nudge when the
// user has not studied today.
func (s *SuggestionController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now()
	suggestions := []suggestion{}

	// Lowest-progress subject, only when it is genuinely behind.
	var subjects []models.Subject
	if err := s.db.Where("user_id = ?", userID).Find(&subjects).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list subjects")
		return
	}
	var laggard *models.Subject
	for i := range subjects {
		p := models.SubjectProgress(subjects[i].CompletedChapters, subjects[i].TotalChapters)
		if p >= 30 {
			continue
		}
		if laggard == nil ||
			p < models.SubjectProgress(laggard.CompletedChapters, laggard.TotalChapters) {
			laggard = &subjects[i]
		}
	}
	if laggard != nil {
		p := models.SubjectProgress(laggard.CompletedChapters, laggard.TotalChapters)
		suggestions = append(suggestions, suggestion{
			Type:    "subject",
			Urgency: "medium",
			Title:   fmt.Sprintf("Catch up on %s", laggard.Name),
			Detail:  fmt.Sprintf("Only %d%% of chapters done", p),
		})
	}

	// Revisions due within 3 days, urgent when due tomorrow or earlier.
	var plans []models.RevisionPlan
	horizon := planner.Midnight(now).AddDate(0, 0, 4)
	if err := s.db.Where("user_id = ? AND completed = ? AND review_date < ?", userID, false, horizon).
		Order("review_date ASC").Find(&plans).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to list revision plans")
		return
	}
	for _, p := range plans {
		urgency := "medium"
		if planner.DaysUntil(now, p.ReviewDate) <= 1 {
			urgency = "high"
		}
		suggestions = append(suggestions, suggestion{
			Type:    "revision",
			Urgency: urgency,
			Title:   fmt.Sprintf("Review %s", p.Topic),
			Detail:  fmt.Sprintf("Scheduled for %s", p.ReviewDate.Format("2006-01-02")),
		})
	}

	// Goals with deadlines within 7 days, urgent within 2.
	var goals []models.Goal
	goalHorizon := planner.Midnight(now).AddDate(0, 0, 8)
	if err := s.db.Where("user_id = ? AND completed = ? AND deadline < ?", userID, false, goalHorizon).
		Order("deadline ASC").Find(&goals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to list goals")
		return
	}
	for _, g := range goals {
		days := planner.DaysUntil(now, g.Deadline)
		urgency := "medium"
		if days <= 2 {
			urgency = "high"
		}
		detail := fmt.Sprintf("Deadline in %d days at %d%% progress", days, g.Progress)
		if days < 0 {
			detail = fmt.Sprintf("Deadline passed %d days ago at %d%% progress", -days, g.Progress)
		}
		suggestions = append(suggestions, suggestion{
			Type:    "goal",
			Urgency: urgency,
			Title:   fmt.Sprintf("Push on %s", g.Title),
			Detail:  detail,
		})
	}

	// Streak nudge when there is no study recorded today.
	stats, err := loadStats(s.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to load stats")
		return
	}
	today := now.Format("2006-01-02")
	if stats.LastStudyDate == nil || stats.LastStudyDate.Format("2006-01-02") != today {
		suggestions = append(suggestions, suggestion{
			Type:    "streak",
			Urgency: "medium",
			Title:   "Study today",
			Detail:  fmt.Sprintf("Keep your %d day streak alive", stats.StudyStreak),
		})
	}

	utils.Success(ctx, gin.H{"items": suggestions})
}

package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/planner"
	"github.com/studyhive/studyhive/utils"
)

// RevisionController manages the revision planner: single plans, spaced
// batches and automatic suggestions derived from completed study blocks.
type RevisionController struct {
	db *gorm.DB
}

// NewRevisionController creates a new controller instance.
func NewRevisionController(db *gorm.DB) *RevisionController {
	return &RevisionController{db: db}
}

// CreateRevision schedules a single review.
func (r *RevisionController) CreateRevision(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		SubjectID  uint   `json:"subject_id" binding:"required"`
		Topic      string `json:"topic" binding:"required,min=1"`
		ReviewDate string `json:"review_date" binding:"required"`
		Priority   string `json:"priority"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	reviewDate, err := time.ParseInLocation("2006-01-02", req.ReviewDate, time.Local)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, "review_date must be yyyy-mm-dd")
		return
	}
	priority := strings.ToLower(strings.TrimSpace(req.Priority))
	if priority == "" {
		priority = "medium"
	}
	if !validPriorities[priority] {
		utils.Error(ctx, http.StatusBadRequest, 40032, "priority must be low, medium or high")
		return
	}

	var subject models.Subject
	if err := r.db.Where("user_id = ?", userID).First(&subject, req.SubjectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "subject not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load subject")
		return
	}

	plan := models.RevisionPlan{
		UserID:     userID,
		SubjectID:  subject.ID,
		Topic:      strings.TrimSpace(req.Topic),
		ReviewDate: reviewDate,
		Priority:   priority,
	}
	if err := r.db.Create(&plan).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to create revision plan")
		return
	}

	utils.Success(ctx, gin.H{"plan": plan})
}

// CreateSpacedBatch creates the five forgetting-curve reviews for a topic.
// Creation is best effort: a slot that fails to persist is skipped and the
// remaining slots are still attempted.
func (r *RevisionController) CreateSpacedBatch(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		SubjectID uint   `json:"subject_id" binding:"required"`
		Topic     string `json:"topic" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "invalid request payload")
		return
	}

	var subject models.Subject
	if err := r.db.Where("user_id = ?", userID).First(&subject, req.SubjectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "subject not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load subject")
		return
	}

	topic := strings.TrimSpace(req.Topic)
	created := make([]models.RevisionPlan, 0, 5)
	for _, slot := range planner.SpacedSchedule(time.Now()) {
		plan := models.RevisionPlan{
			UserID:     userID,
			SubjectID:  subject.ID,
			Topic:      topic,
			ReviewDate: slot.ReviewDate,
			Priority:   slot.Priority,
		}
		if err := r.db.Create(&plan).Error; err != nil {
			utils.Sugar.Warnw("spaced slot create failed",
				"user_id", userID, "topic", topic, "review_date", slot.ReviewDate, "error", err)
			continue
		}
		created = append(created, plan)
	}
	if len(created) == 0 {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to create spaced batch")
		return
	}

	utils.Success(ctx, gin.H{"items": created, "created": len(created)})
}

// Suggest scans recent completed study blocks and creates next-day reviews
// for topics that have no revision plan yet. At most ten blocks are
// considered and each topic is suggested once per call.
func (r *RevisionController) Suggest(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var blocks []models.StudyBlock
	if err := r.db.Where("user_id = ? AND completed = ?", userID, true).
		Order("created_at DESC").Limit(10).Find(&blocks).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to scan study blocks")
		return
	}

	// Subjects are matched against block subject names exactly; a block
	// whose subject was deleted or renamed yields no suggestion.
	var subjects []models.Subject
	if err := r.db.Where("user_id = ?", userID).Find(&subjects).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list subjects")
		return
	}
	subjectByName := make(map[string]uint, len(subjects))
	for _, s := range subjects {
		subjectByName[s.Name] = s.ID
	}

	var existing []models.RevisionPlan
	if err := r.db.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to list revision plans")
		return
	}
	planned := make(map[string]bool, len(existing))
	for _, p := range existing {
		planned[p.Topic] = true
	}

	reviewDate := planner.SuggestionDate(time.Now())
	created := []models.RevisionPlan{}
	seen := make(map[string]bool)
	for _, block := range blocks {
		topic := block.Topic
		if topic == "" || seen[topic] || planned[topic] {
			continue
		}
		subjectID, ok := subjectByName[block.Subject]
		if !ok {
			continue
		}
		seen[topic] = true
		plan := models.RevisionPlan{
			UserID:     userID,
			SubjectID:  subjectID,
			Topic:      topic,
			ReviewDate: reviewDate,
			Priority:   planner.SuggestionPriority,
		}
		if err := r.db.Create(&plan).Error; err != nil {
			utils.Sugar.Warnw("suggested plan create failed",
				"user_id", userID, "topic", topic, "error", err)
			continue
		}
		created = append(created, plan)
	}

	utils.Success(ctx, gin.H{"items": created, "created": len(created)})
}

// ListRevisions returns plans ordered by review date. ?pending=true hides
// completed plans, ?due=today narrows to plans due today or overdue.
func (r *RevisionController) ListRevisions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	query := r.db.Where("user_id = ?", userID)
	if ctx.Query("pending") == "true" {
		query = query.Where("completed = ?", false)
	}
	if ctx.Query("due") == "today" {
		query = query.Where("review_date < ?", planner.Midnight(time.Now()).AddDate(0, 0, 1))
	}

	var plans []models.RevisionPlan
	if err := query.Order("review_date ASC").Find(&plans).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to list revision plans")
		return
	}

	utils.Success(ctx, gin.H{"items": plans})
}

// CompleteRevision marks a plan as reviewed.
func (r *RevisionController) CompleteRevision(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var plan models.RevisionPlan
	if err := r.db.Where("user_id = ?", userID).First(&plan, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40460, "revision plan not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50064, "failed to load revision plan")
		return
	}

	plan.Completed = true
	if err := r.db.Save(&plan).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50065, "failed to update revision plan")
		return
	}

	utils.Success(ctx, gin.H{"plan": plan})
}

// DeleteRevision removes a plan.
func (r *RevisionController) DeleteRevision(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	res := r.db.Where("user_id = ?", userID).Delete(&models.RevisionPlan{}, ctx.Param("id"))
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50066, "failed to delete revision plan")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40460, "revision plan not found")
		return
	}

	utils.Success(ctx, gin.H{"message": "revision plan deleted"})
}

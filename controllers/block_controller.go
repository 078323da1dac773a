package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

var validPriorities = map[string]bool{"low": true, "medium": true, "high": true}

// BlockController manages scheduled study blocks.
type BlockController struct {
	db *gorm.DB
}

// NewBlockController creates a new controller instance.
func NewBlockController(db *gorm.DB) *BlockController {
	return &BlockController{db: db}
}

// CreateBlock schedules a study block. End must come after start.
func (b *BlockController) CreateBlock(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Subject   string    `json:"subject" binding:"required"`
		Topic     string    `json:"topic" binding:"required"`
		StartTime time.Time `json:"start_time" binding:"required"`
		EndTime   time.Time `json:"end_time" binding:"required"`
		Priority  string    `json:"priority"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		utils.Error(ctx, http.StatusBadRequest, 40031, "end_time must be after start_time")
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

	block := models.StudyBlock{
		UserID:    userID,
		Subject:   strings.TrimSpace(req.Subject),
		Topic:     strings.TrimSpace(req.Topic),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Priority:  priority,
	}
	if err := b.db.Create(&block).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to create study block")
		return
	}

	utils.Success(ctx, gin.H{"block": block})
}

// ListBlocks returns blocks ordered by start time. An optional ?date=yyyy-mm-dd
// filter narrows to a single day in server local time.
func (b *BlockController) ListBlocks(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	query := b.db.Where("user_id = ?", userID)
	if d := ctx.Query("date"); d != "" {
		day, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40033, "date must be yyyy-mm-dd")
			return
		}
		query = query.Where("start_time >= ? AND start_time < ?", day, day.AddDate(0, 0, 1))
	}

	var blocks []models.StudyBlock
	if err := query.Order("start_time ASC").Find(&blocks).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to list study blocks")
		return
	}

	utils.Success(ctx, gin.H{"items": blocks})
}

// ToggleComplete flips or sets a block's completed flag.
func (b *BlockController) ToggleComplete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.Error(ctx, http.StatusBadRequest, 40034, "invalid request payload")
		return
	}

	var block models.StudyBlock
	if err := b.db.Where("user_id = ?", userID).First(&block, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40430, "study block not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load study block")
		return
	}

	if req.Completed != nil {
		block.Completed = *req.Completed
	} else {
		block.Completed = !block.Completed
	}
	if err := b.db.Save(&block).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to update study block")
		return
	}

	utils.Success(ctx, gin.H{"block": block})
}

// UpdateBlock edits block fields while enforcing the time ordering rule.
func (b *BlockController) UpdateBlock(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Subject   string     `json:"subject"`
		Topic     string     `json:"topic"`
		StartTime *time.Time `json:"start_time"`
		EndTime   *time.Time `json:"end_time"`
		Priority  string     `json:"priority"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40034, "invalid request payload")
		return
	}

	var block models.StudyBlock
	if err := b.db.Where("user_id = ?", userID).First(&block, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40430, "study block not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load study block")
		return
	}

	if v := strings.TrimSpace(req.Subject); v != "" {
		block.Subject = v
	}
	if v := strings.TrimSpace(req.Topic); v != "" {
		block.Topic = v
	}
	if req.StartTime != nil {
		block.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		block.EndTime = *req.EndTime
	}
	if v := strings.ToLower(strings.TrimSpace(req.Priority)); v != "" {
		if !validPriorities[v] {
			utils.Error(ctx, http.StatusBadRequest, 40032, "priority must be low, medium or high")
			return
		}
		block.Priority = v
	}
	if !block.EndTime.After(block.StartTime) {
		utils.Error(ctx, http.StatusBadRequest, 40031, "end_time must be after start_time")
		return
	}

	if err := b.db.Save(&block).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to update study block")
		return
	}

	utils.Success(ctx, gin.H{"block": block})
}

// DeleteBlock removes a scheduled block.
func (b *BlockController) DeleteBlock(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	res := b.db.Where("user_id = ?", userID).Delete(&models.StudyBlock{}, ctx.Param("id"))
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to delete study block")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40430, "study block not found")
		return
	}

	utils.Success(ctx, gin.H{"message": "study block deleted"})
}

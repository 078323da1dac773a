package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/gamify"
	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

// ExportController builds the downloadable progress workbook.
type ExportController struct {
	db *gorm.DB
}

// NewExportController creates a new controller instance.
func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{db: db}
}

// Progress writes an .xlsx workbook with three sheets: per-subject chapter
// progress, the session log, and a stats summary.
func (e *ExportController) Progress(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var subjects []models.Subject
	if err := e.db.Where("user_id = ?", userID).Order("name ASC").Find(&subjects).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list subjects")
		return
	}
	var sessions []models.StudySession
	if err := e.db.Where("user_id = ? AND completed = ?", userID, true).
		Order("started_at ASC").Find(&sessions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to list sessions")
		return
	}
	stats, err := loadStats(e.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to load stats")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const subjectSheet = "Subjects"
	f.SetSheetName(f.GetSheetName(0), subjectSheet)
	headers := []string{"Subject", "Chapters Done", "Chapters Total", "Progress %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(subjectSheet, cell, h)
	}
	for row, s := range subjects {
		values := []interface{}{
			s.Name,
			s.CompletedChapters,
			s.TotalChapters,
			models.SubjectProgress(s.CompletedChapters, s.TotalChapters),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(subjectSheet, cell, v)
		}
	}

	const sessionSheet = "Sessions"
	f.NewSheet(sessionSheet)
	sessionHeaders := []string{"Date", "Duration (min)", "XP Earned"}
	for i, h := range sessionHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sessionSheet, cell, h)
	}
	for row, s := range sessions {
		values := []interface{}{
			s.StartedAt.Format("2006-01-02 15:04"),
			s.Duration,
			s.XPEarned,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sessionSheet, cell, v)
		}
	}

	const statsSheet = "Stats"
	f.NewSheet(statsSheet)
	lastStudy := ""
	if stats.LastStudyDate != nil {
		lastStudy = stats.LastStudyDate.Format("2006-01-02")
	}
	rows := [][]interface{}{
		{"Level", stats.Level},
		{"Current XP", stats.CurrentXP},
		{"Total XP", stats.TotalXP},
		{"XP To Next Level", gamify.XPForLevel(stats.Level)},
		{"Study Streak", stats.StudyStreak},
		{"Last Study Date", lastStudy},
	}
	for row, pair := range rows {
		for col, v := range pair {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+1)
			f.SetCellValue(statsSheet, cell, v)
		}
	}

	filename := fmt.Sprintf("progress-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(ctx.Writer); err != nil {
		utils.Sugar.Warnw("progress export write failed", "user_id", userID, "error", err)
	}
}

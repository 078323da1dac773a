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

// GoalController manages goals and their ordered steps. Every step mutation
// recomputes the parent goal's progress inside the same transaction so the
// stored percentage never drifts from the step rows.
type GoalController struct {
	db *gorm.DB
}

// NewGoalController creates a new controller instance.
func NewGoalController(db *gorm.DB) *GoalController {
	return &GoalController{db: db}
}

// recomputeGoal reloads the steps and persists progress and completed.
func recomputeGoal(tx *gorm.DB, goal *models.Goal) error {
	var steps []models.GoalStep
	if err := tx.Where("goal_id = ?", goal.ID).Order("id ASC").Find(&steps).Error; err != nil {
		return err
	}
	goal.Steps = steps
	goal.Progress = models.GoalProgress(steps)
	goal.Completed = goal.Progress == 100
	return tx.Model(goal).Select("progress", "completed").Updates(map[string]interface{}{
		"progress":  goal.Progress,
		"completed": goal.Completed,
	}).Error
}

func (g *GoalController) loadGoal(userID uint, id string) (*models.Goal, error) {
	var goal models.Goal
	err := g.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("goal_steps.id ASC")
	}).Where("user_id = ?", userID).First(&goal, id).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// CreateGoal adds a goal, optionally with an initial list of steps.
func (g *GoalController) CreateGoal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title       string    `json:"title" binding:"required,min=1"`
		Description string    `json:"description"`
		Deadline    time.Time `json:"deadline"`
		Steps       []string  `json:"steps"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}

	goal := models.Goal{
		UserID:      userID,
		Title:       utils.SanitizeText(strings.TrimSpace(req.Title)),
		Description: utils.SanitizeUGC(req.Description),
		Deadline:    req.Deadline,
	}
	for _, title := range req.Steps {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		goal.Steps = append(goal.Steps, models.GoalStep{Title: utils.SanitizeText(title)})
	}

	if err := g.db.Create(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to create goal")
		return
	}
	if goal.Steps == nil {
		goal.Steps = []models.GoalStep{}
	}

	utils.Success(ctx, gin.H{"goal": goal})
}

// ListGoals returns the caller's goals with steps preloaded.
func (g *GoalController) ListGoals(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var goals []models.Goal
	err := g.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("goal_steps.id ASC")
	}).Where("user_id = ?", userID).Order("deadline ASC").Find(&goals).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to list goals")
		return
	}
	for i := range goals {
		if goals[i].Steps == nil {
			goals[i].Steps = []models.GoalStep{}
		}
	}

	utils.Success(ctx, gin.H{"items": goals})
}

// UpdateGoal edits goal metadata. Progress is derived and cannot be set here.
func (g *GoalController) UpdateGoal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Deadline    *time.Time `json:"deadline"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40051, "invalid request payload")
		return
	}

	goal, err := g.loadGoal(userID, ctx.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40450, "goal not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load goal")
		return
	}

	if req.Title != nil {
		title := utils.SanitizeText(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Error(ctx, http.StatusBadRequest, 40052, "title cannot be empty")
			return
		}
		goal.Title = title
	}
	if req.Description != nil {
		goal.Description = utils.SanitizeUGC(*req.Description)
	}
	if req.Deadline != nil {
		goal.Deadline = *req.Deadline
	}

	if err := g.db.Model(goal).Select("title", "description", "deadline").Updates(map[string]interface{}{
		"title":       goal.Title,
		"description": goal.Description,
		"deadline":    goal.Deadline,
	}).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to update goal")
		return
	}

	utils.Success(ctx, gin.H{"goal": goal})
}

// DeleteGoal removes a goal and, via the FK constraint, its steps.
func (g *GoalController) DeleteGoal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	goal, err := g.loadGoal(userID, ctx.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40450, "goal not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load goal")
		return
	}

	err = g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.GoalStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(goal).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to delete goal")
		return
	}

	utils.Success(ctx, gin.H{"message": "goal deleted"})
}

// AddStep appends a step and recomputes progress.
func (g *GoalController) AddStep(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title string `json:"title" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40053, "invalid request payload")
		return
	}

	goal, err := g.loadGoal(userID, ctx.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40450, "goal not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load goal")
		return
	}

	err = g.db.Transaction(func(tx *gorm.DB) error {
		step := models.GoalStep{
			GoalID: goal.ID,
			Title:  utils.SanitizeText(strings.TrimSpace(req.Title)),
		}
		if err := tx.Create(&step).Error; err != nil {
			return err
		}
		return recomputeGoal(tx, goal)
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50055, "failed to add step")
		return
	}

	utils.Success(ctx, gin.H{"goal": goal})
}

// ToggleStep sets or flips a step's completion and recomputes the goal.
// With a {completed} body the value is written as-is; without one the
// current state is flipped.
func (g *GoalController) ToggleStep(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.Error(ctx, http.StatusBadRequest, 40054, "invalid request payload")
		return
	}

	goal, err := g.loadGoal(userID, ctx.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40450, "goal not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load goal")
		return
	}

	err = g.db.Transaction(func(tx *gorm.DB) error {
		var step models.GoalStep
		if err := tx.Where("goal_id = ?", goal.ID).First(&step, ctx.Param("stepId")).Error; err != nil {
			return err
		}
		if req.Completed != nil {
			step.Completed = *req.Completed
		} else {
			step.Completed = !step.Completed
		}
		if err := tx.Save(&step).Error; err != nil {
			return err
		}
		return recomputeGoal(tx, goal)
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40451, "step not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50056, "failed to update step")
		return
	}

	utils.Success(ctx, gin.H{"goal": goal})
}

// DeleteStep removes a step and recomputes the goal.
func (g *GoalController) DeleteStep(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	goal, err := g.loadGoal(userID, ctx.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40450, "goal not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load goal")
		return
	}

	err = g.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("goal_id = ?", goal.ID).Delete(&models.GoalStep{}, ctx.Param("stepId"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return recomputeGoal(tx, goal)
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40451, "step not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50057, "failed to delete step")
		return
	}

	utils.Success(ctx, gin.H{"goal": goal})
}

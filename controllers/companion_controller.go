package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/gamify"
	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

// CompanionController manages the virtual study pet.
type CompanionController struct {
	db *gorm.DB
}

// NewCompanionController creates a new controller instance.
func NewCompanionController(db *gorm.DB) *CompanionController {
	return &CompanionController{db: db}
}

func loadCompanion(tx *gorm.DB, userID uint) (*models.Companion, error) {
	var pet models.Companion
	err := tx.Where("user_id = ?", userID).First(&pet).Error
	if err == gorm.ErrRecordNotFound {
		pet = models.Companion{
			UserID:          userID,
			Name:            "Buddy",
			Type:            "owl",
			Level:           1,
			Happiness:       80,
			Energy:          100,
			LastInteraction: time.Now(),
		}
		err = tx.Create(&pet).Error
	}
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func companionView(pet *models.Companion) gin.H {
	return gin.H{
		"companion": pet,
		"mood":      gamify.Mood(pet.Happiness, pet.Energy),
	}
}

// Get returns the companion, provisioning the default on first read.
func (c *CompanionController) Get(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	pet, err := loadCompanion(c.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to load companion")
		return
	}

	utils.Success(ctx, companionView(pet))
}

// interact applies a stat delta, clamps, stamps the interaction and saves.
func (c *CompanionController) interact(ctx *gin.Context, apply func(*models.Companion)) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	pet, err := loadCompanion(c.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to load companion")
		return
	}

	apply(pet)
	pet.Happiness = gamify.Clamp(pet.Happiness)
	pet.Energy = gamify.Clamp(pet.Energy)
	pet.LastInteraction = time.Now()

	if err := c.db.Save(pet).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to update companion")
		return
	}

	utils.Success(ctx, companionView(pet))
}

// Feed restores energy and a little happiness.
func (c *CompanionController) Feed(ctx *gin.Context) {
	c.interact(ctx, func(pet *models.Companion) {
		pet.Energy += 30
		pet.Happiness += 10
	})
}

// Play raises happiness at the cost of energy.
func (c *CompanionController) Play(ctx *gin.Context) {
	c.interact(ctx, func(pet *models.Companion) {
		pet.Happiness += 20
		pet.Energy -= 10
	})
}

// LevelUp advances the companion a level and cheers it up.
func (c *CompanionController) LevelUp(ctx *gin.Context) {
	c.interact(ctx, func(pet *models.Companion) {
		pet.Level++
		pet.Happiness += 20
	})
}

// Update renames or retypes the companion.
func (c *CompanionController) Update(ctx *gin.Context) {
	var req struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40090, "invalid request payload")
		return
	}

	c.interact(ctx, func(pet *models.Companion) {
		if v := strings.TrimSpace(req.Name); v != "" {
			pet.Name = utils.SanitizeText(v)
		}
		if v := strings.TrimSpace(req.Type); v != "" {
			pet.Type = v
		}
	})
}

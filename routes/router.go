package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/ai"
	"github.com/studyhive/studyhive/config"
	"github.com/studyhive/studyhive/controllers"
	"github.com/studyhive/studyhive/middleware"
	"github.com/studyhive/studyhive/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(ginzap.Ginzap(gl, time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	subjectController := controllers.NewSubjectController(db)
	blockController := controllers.NewBlockController(db)
	noteController := controllers.NewNoteController(db)
	goalController := controllers.NewGoalController(db)
	revisionController := controllers.NewRevisionController(db)
	sessionController := controllers.NewSessionController(db)
	challengeController := controllers.NewChallengeController(db)
	companionController := controllers.NewCompanionController(db)
	suggestionController := controllers.NewSuggestionController(db)
	preferenceController := controllers.NewPreferenceController(db)
	assistantController := controllers.NewAssistantController(ai.NewClient(cfg))
	exportController := controllers.NewExportController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.POST("/subjects", subjectController.CreateSubject)
	protected.GET("/subjects", subjectController.ListSubjects)
	protected.PATCH("/subjects/:id/chapters", subjectController.SetChapterCompletion)
	protected.PUT("/subjects/:id", subjectController.UpdateSubject)
	protected.DELETE("/subjects/:id", subjectController.DeleteSubject)

	protected.POST("/blocks", blockController.CreateBlock)
	protected.GET("/blocks", blockController.ListBlocks)
	protected.PATCH("/blocks/:id/complete", blockController.ToggleComplete)
	protected.PUT("/blocks/:id", blockController.UpdateBlock)
	protected.DELETE("/blocks/:id", blockController.DeleteBlock)

	protected.POST("/notes", noteController.CreateNote)
	protected.GET("/notes", noteController.ListNotes)
	protected.GET("/notes/search", noteController.SearchNotes)
	protected.GET("/notes/:id", noteController.GetNote)
	protected.PUT("/notes/:id", noteController.UpdateNote)
	protected.DELETE("/notes/:id", noteController.DeleteNote)

	protected.POST("/goals", goalController.CreateGoal)
	protected.GET("/goals", goalController.ListGoals)
	protected.PUT("/goals/:id", goalController.UpdateGoal)
	protected.DELETE("/goals/:id", goalController.DeleteGoal)
	protected.POST("/goals/:id/steps", goalController.AddStep)
	protected.PATCH("/goals/:id/steps/:stepId", goalController.ToggleStep)
	protected.DELETE("/goals/:id/steps/:stepId", goalController.DeleteStep)

	protected.POST("/revisions", revisionController.CreateRevision)
	protected.GET("/revisions", revisionController.ListRevisions)
	protected.POST("/revisions/spaced", revisionController.CreateSpacedBatch)
	protected.POST("/revisions/suggest", revisionController.Suggest)
	protected.PATCH("/revisions/:id/complete", revisionController.CompleteRevision)
	protected.DELETE("/revisions/:id", revisionController.DeleteRevision)

	protected.POST("/sessions", sessionController.StartSession)
	protected.GET("/sessions", sessionController.ListSessions)
	protected.PATCH("/sessions/:id/complete", sessionController.CompleteSession)
	protected.GET("/stats", sessionController.GetStats)
	protected.GET("/achievements", sessionController.ListAchievements)

	protected.GET("/challenges/today", challengeController.Today)
	protected.PATCH("/challenges/:id/complete", challengeController.Complete)

	protected.GET("/companion", companionController.Get)
	protected.POST("/companion/feed", companionController.Feed)
	protected.POST("/companion/play", companionController.Play)
	protected.POST("/companion/levelup", companionController.LevelUp)
	protected.PATCH("/companion", companionController.Update)

	protected.GET("/suggestions", suggestionController.List)

	protected.GET("/preferences", preferenceController.Get)
	protected.PUT("/preferences", preferenceController.Put)

	protected.POST("/assistant/chat", assistantController.Chat)

	protected.GET("/export/progress", exportController.Progress)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}

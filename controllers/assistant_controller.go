package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyhive/studyhive/ai"
	"github.com/studyhive/studyhive/utils"
)

// AssistantController proxies chat requests to the Gemini client.
type AssistantController struct {
	client *ai.Client
}

// NewAssistantController creates a new controller instance.
func NewAssistantController(client *ai.Client) *AssistantController {
	return &AssistantController{client: client}
}

// Chat forwards a message with its history and returns the reply. History is
// capped to the most recent entries before the upstream call.
func (a *AssistantController) Chat(ctx *gin.Context) {
	if _, ok := getUserID(ctx); !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Message string       `json:"message" binding:"required,min=1"`
		History []ai.Message `json:"history"`
		Subject string       `json:"subject"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40120, "invalid request payload")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		utils.Error(ctx, http.StatusBadRequest, 40121, "message cannot be empty")
		return
	}

	history := req.History
	if len(history) > 20 {
		history = history[len(history)-20:]
	}

	reply, err := a.client.Chat(ctx.Request.Context(), message, history, strings.TrimSpace(req.Subject))
	if err != nil {
		if err == ai.ErrNotConfigured {
			utils.Error(ctx, http.StatusBadGateway, 50220, "assistant is not configured")
			return
		}
		utils.Sugar.Warnw("assistant chat failed", "error", err)
		utils.Error(ctx, http.StatusBadGateway, 50221, "assistant request failed")
		return
	}

	utils.Success(ctx, gin.H{
		"id":        uuid.NewString(),
		"reply":     reply,
		"timestamp": time.Now().UTC(),
	})
}

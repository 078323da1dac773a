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

// NoteController manages markdown study notes.
type NoteController struct {
	db *gorm.DB
}

// NewNoteController creates a new controller instance.
func NewNoteController(db *gorm.DB) *NoteController {
	return &NoteController{db: db}
}

// noteView is the wire shape: tags as a list rather than the stored JSON text.
type noteView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toNoteView(n models.Note) noteView {
	return noteView{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      decodeTags(n.Tags),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// CreateNote stores a note after sanitizing user supplied markup.
func (n *NoteController) CreateNote(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title   string   `json:"title" binding:"required,min=1"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	note := models.Note{
		UserID:  userID,
		Title:   utils.SanitizeText(strings.TrimSpace(req.Title)),
		Content: utils.SanitizeUGC(req.Content),
		Tags:    encodeTags(utils.UniqueStrings(req.Tags)),
	}
	if err := n.db.Create(&note).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to create note")
		return
	}

	utils.Success(ctx, gin.H{"note": toNoteView(note)})
}

// ListNotes returns notes newest first, optionally filtered by ?tag= or ?q=.
func (n *NoteController) ListNotes(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	query := n.db.Where("user_id = ?", userID)
	if q := strings.TrimSpace(ctx.Query("q")); q != "" {
		like := "%" + q + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if tag := strings.TrimSpace(ctx.Query("tag")); tag != "" {
		query = query.Where("tags LIKE ?", "%\""+tag+"\"%")
	}

	var total int64
	query.Model(&models.Note{}).Count(&total)

	var notes []models.Note
	if err := query.Order("updated_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&notes).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to list notes")
		return
	}

	views := make([]noteView, 0, len(notes))
	for _, note := range notes {
		views = append(views, toNoteView(note))
	}
	utils.Success(ctx, gin.H{"items": views, "total": total, "page": page, "page_size": pageSize})
}

// SearchNotes is the dedicated search surface; it shares the list logic.
func (n *NoteController) SearchNotes(ctx *gin.Context) {
	n.ListNotes(ctx)
}

// GetNote returns a single note.
func (n *NoteController) GetNote(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var note models.Note
	if err := n.db.Where("user_id = ?", userID).First(&note, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40440, "note not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load note")
		return
	}

	utils.Success(ctx, gin.H{"note": toNoteView(note)})
}

// UpdateNote edits title, content or tags.
func (n *NoteController) UpdateNote(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title   *string   `json:"title"`
		Content *string   `json:"content"`
		Tags    *[]string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid request payload")
		return
	}

	var note models.Note
	if err := n.db.Where("user_id = ?", userID).First(&note, ctx.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40440, "note not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load note")
		return
	}

	if req.Title != nil {
		title := utils.SanitizeText(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Error(ctx, http.StatusBadRequest, 40042, "title cannot be empty")
			return
		}
		note.Title = title
	}
	if req.Content != nil {
		note.Content = utils.SanitizeUGC(*req.Content)
	}
	if req.Tags != nil {
		note.Tags = encodeTags(utils.UniqueStrings(*req.Tags))
	}

	if err := n.db.Save(&note).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to update note")
		return
	}

	utils.Success(ctx, gin.H{"note": toNoteView(note)})
}

// DeleteNote removes a note.
func (n *NoteController) DeleteNote(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	res := n.db.Where("user_id = ?", userID).Delete(&models.Note{}, ctx.Param("id"))
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to delete note")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40440, "note not found")
		return
	}

	utils.Success(ctx, gin.H{"message": "note deleted"})
}

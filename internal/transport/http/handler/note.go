package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orayachan/notesapp-backend/internal/domain"
	"github.com/orayachan/notesapp-backend/internal/metrics"
	"github.com/orayachan/notesapp-backend/internal/transport/http/middleware"
	"github.com/orayachan/notesapp-backend/internal/usecase"
)

// noteUsecaser is the subset of NoteUsecase the owner-scoped handlers need.
type noteUsecaser interface {
	Create(ctx context.Context, p domain.Principal, input usecase.CreateNoteInput) (*domain.Note, error)
	Get(ctx context.Context, p domain.Principal, noteID string) (*domain.Note, error)
	Update(ctx context.Context, p domain.Principal, noteID string, input usecase.UpdateNoteInput) (*domain.Note, error)
	SetPinned(ctx context.Context, p domain.Principal, noteID string, pinned bool) (*domain.Note, error)
	SetVisibility(ctx context.Context, p domain.Principal, noteID string, public bool) (*domain.Note, error)
	Delete(ctx context.Context, p domain.Principal, noteID string) error
	ListOwn(ctx context.Context, p domain.Principal) ([]*domain.Note, error)
	ListAllPinnedFirst(ctx context.Context) ([]*domain.Note, error)
	Search(ctx context.Context, p domain.Principal, query string) ([]*domain.Note, error)
}

type NoteHandler struct {
	noteUsecase noteUsecaser
	logger      *slog.Logger
}

func NewNoteHandler(noteUsecase noteUsecaser, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{noteUsecase: noteUsecase, logger: logger.With("component", "note_handler")}
}

type noteResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toNoteResponse(n *domain.Note) noteResponse {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		IsPinned:  n.IsPinned,
		IsPublic:  n.IsPublic,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteResponses(notes []*domain.Note) []noteResponse {
	out := make([]noteResponse, len(notes))
	for i, n := range notes {
		out[i] = toNoteResponse(n)
	}
	return out
}

// principal aborts with 401 when the auth middleware did not run.
func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Unauthorized"})
	}
	return p, ok
}

type addNoteRequest struct {
	Title    string   `json:"title"   binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Tags     []string `json:"tags"`
	IsPinned bool     `json:"isPinned"`
}

// POST /add-note
func (h *NoteHandler) Add(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errTitleContentRequired})
		return
	}

	note, err := h.noteUsecase.Create(c.Request.Context(), p, usecase.CreateNoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "add note", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	metrics.NotesCreatedTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"error":   false,
		"note":    toNoteResponse(note),
		"message": "Note added successfully",
	})
}

// editNoteRequest uses pointer fields: nil means "not supplied", while a
// present false or empty value is an explicit assignment.
type editNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
}

// PUT /edit-note/:id
func (h *NoteHandler) Edit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req editNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errNoChanges})
		return
	}

	note, err := h.noteUsecase.Update(c.Request.Context(), p, c.Param("id"), usecase.UpdateNoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errNoChanges})
		case errors.Is(err, domain.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": errNoteNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "edit note", "note_id", c.Param("id"), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":   false,
		"note":    toNoteResponse(note),
		"message": "Note updated successfully",
	})
}

type pinRequest struct {
	IsPinned *bool `json:"isPinned" binding:"required"`
}

// PUT /update-note-pinned/:id
func (h *NoteHandler) TogglePin(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errNoChanges})
		return
	}

	note, err := h.noteUsecase.SetPinned(c.Request.Context(), p, c.Param("id"), *req.IsPinned)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": errNoteNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "toggle pin", "note_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":   false,
		"note":    toNoteResponse(note),
		"message": "Note pinned status updated successfully",
	})
}

type visibilityRequest struct {
	IsPublic *bool `json:"isPublic" binding:"required"`
}

// PUT /notes/:id/visibility
func (h *NoteHandler) SetVisibility(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errNoChanges})
		return
	}

	note, err := h.noteUsecase.SetVisibility(c.Request.Context(), p, c.Param("id"), *req.IsPublic)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": errNoteNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "set visibility", "note_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":   false,
		"note":    toNoteResponse(note),
		"message": "Note visibility updated successfully",
	})
}

// DELETE /delete-note/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	err := h.noteUsecase.Delete(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": errNoteNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete note", "note_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"error": false, "message": "Note deleted successfully"})
}

// GET /get-all-notes
func (h *NoteHandler) ListOwn(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	notes, err := h.noteUsecase.ListOwn(c.Request.Context(), p)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list notes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":   false,
		"notes":   toNoteResponses(notes),
		"message": "All notes retrieved successfully",
	})
}

// GET /notes
// Legacy global listing: every note, regardless of owner or visibility.
// Deliberately unscoped; wired without auth middleware.
func (h *NoteHandler) ListAll(c *gin.Context) {
	notes, err := h.noteUsecase.ListAllPinnedFirst(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list all notes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":   false,
		"notes":   toNoteResponses(notes),
		"message": "All notes retrieved successfully",
	})
}

// GET /get-note/:id
func (h *NoteHandler) GetByID(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	note, err := h.noteUsecase.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": errNoteNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get note", "note_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":   false,
		"note":    toNoteResponse(note),
		"message": "Note retrieved successfully",
	})
}

// GET /search-notes?query=
func (h *NoteHandler) Search(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	notes, err := h.noteUsecase.Search(c.Request.Context(), p, c.Query("query"))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errQueryRequired})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "search notes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error":   false,
		"notes":   toNoteResponses(notes),
		"message": "Notes matching the search query retrieved successfully",
	})
}

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orayachan/notesapp-backend/internal/domain"
)

// publicUsecaser covers the unauthenticated read-only surface.
type publicUsecaser interface {
	PublicProfile(ctx context.Context, ownerID string) (*domain.User, error)
	PublicGet(ctx context.Context, ownerID, noteID string) (*domain.Note, error)
	ListPublic(ctx context.Context, ownerID string) ([]*domain.Note, error)
}

// PublicHandler serves public profiles and published notes. No principal is
// involved: every query is filtered to is_public notes of the requested owner.
type PublicHandler struct {
	noteUsecase publicUsecaser
	logger      *slog.Logger
}

func NewPublicHandler(noteUsecase publicUsecaser, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{noteUsecase: noteUsecase, logger: logger.With("component", "public_handler")}
}

// ownerID validates the :userId path param and writes a 400 on failure.
func ownerID(c *gin.Context) (string, bool) {
	id := c.Param("userId")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errInvalidUserID})
		return "", false
	}
	return id, true
}

// GET /public-profile/:userId
func (h *PublicHandler) Profile(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}

	user, err := h.noteUsecase.PublicProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "public profile", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"error": false,
		"user": gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"email":    user.Email,
		},
	})
}

// GET /public-notes/:userId
func (h *PublicHandler) ListNotes(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}

	notes, err := h.noteUsecase.ListPublic(c.Request.Context(), id)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "public notes", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"error": false, "notes": toNoteResponses(notes)})
}

// GET /public-notes/:userId/:noteId
func (h *PublicHandler) GetNote(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}

	note, err := h.noteUsecase.PublicGet(c.Request.Context(), id, c.Param("noteId"))
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": errNoteNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "public note", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"error": false, "note": toNoteResponse(note)})
}

package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orayachan/notesapp-backend/internal/domain"
	"github.com/orayachan/notesapp-backend/internal/transport/http/handler"
)

type fakePublicUsecase struct {
	publicProfile func(ctx context.Context, ownerID string) (*domain.User, error)
	publicGet     func(ctx context.Context, ownerID, noteID string) (*domain.Note, error)
	listPublic    func(ctx context.Context, ownerID string) ([]*domain.Note, error)
}

func (f *fakePublicUsecase) PublicProfile(ctx context.Context, ownerID string) (*domain.User, error) {
	return f.publicProfile(ctx, ownerID)
}

func (f *fakePublicUsecase) PublicGet(ctx context.Context, ownerID, noteID string) (*domain.Note, error) {
	return f.publicGet(ctx, ownerID, noteID)
}

func (f *fakePublicUsecase) ListPublic(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	return f.listPublic(ctx, ownerID)
}

func newPublicEngine(uc *fakePublicUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewPublicHandler(uc, logger)

	r := gin.New()
	r.GET("/public-profile/:userId", h.Profile)
	r.GET("/public-notes/:userId", h.ListNotes)
	r.GET("/public-notes/:userId/:noteId", h.GetNote)
	return r
}

func TestPublicNotes_InvalidUserID_Returns400(t *testing.T) {
	uc := &fakePublicUsecase{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public-notes/not-a-uuid", nil)
	newPublicEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPublicProfile_UnknownUser_Returns404(t *testing.T) {
	uc := &fakePublicUsecase{
		publicProfile: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public-profile/"+uuid.NewString(), nil)
	newPublicEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPublicProfile_ReturnsDisplayFieldsOnly(t *testing.T) {
	uc := &fakePublicUsecase{
		publicProfile: func(_ context.Context, ownerID string) (*domain.User, error) {
			return &domain.User{
				ID: ownerID, FullName: "Owner", Email: "o@x.com",
				PasswordHash: "$2a$10$secret-hash",
			}, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public-profile/"+uuid.NewString(), nil)
	newPublicEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret-hash") {
		t.Error("public profile leaks the password hash")
	}
}

func TestPublicNotes_ReturnsNotes(t *testing.T) {
	var gotOwner string
	uc := &fakePublicUsecase{
		listPublic: func(_ context.Context, ownerID string) ([]*domain.Note, error) {
			gotOwner = ownerID
			return []*domain.Note{{ID: "note-1", Title: "T", Content: "C", IsPublic: true}}, nil
		},
	}
	owner := uuid.NewString()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public-notes/"+owner, nil)
	newPublicEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotOwner != owner {
		t.Errorf("owner = %q, want %q", gotOwner, owner)
	}
	if !strings.Contains(w.Body.String(), `"note-1"`) {
		t.Errorf("body %q missing note", w.Body.String())
	}
}

func TestPublicNote_PrivateOrAbsent_Returns404(t *testing.T) {
	uc := &fakePublicUsecase{
		publicGet: func(_ context.Context, _, _ string) (*domain.Note, error) {
			return nil, domain.ErrNoteNotFound
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public-notes/"+uuid.NewString()+"/note-1", nil)
	newPublicEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

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
	"github.com/orayachan/notesapp-backend/internal/domain"
	"github.com/orayachan/notesapp-backend/internal/transport/http/handler"
	"github.com/orayachan/notesapp-backend/internal/transport/http/middleware"
	"github.com/orayachan/notesapp-backend/internal/usecase"
)

// fakeNoteUsecase implements the unexported noteUsecaser interface.
type fakeNoteUsecase struct {
	create        func(ctx context.Context, p domain.Principal, input usecase.CreateNoteInput) (*domain.Note, error)
	get           func(ctx context.Context, p domain.Principal, noteID string) (*domain.Note, error)
	update        func(ctx context.Context, p domain.Principal, noteID string, input usecase.UpdateNoteInput) (*domain.Note, error)
	setPinned     func(ctx context.Context, p domain.Principal, noteID string, pinned bool) (*domain.Note, error)
	setVisibility func(ctx context.Context, p domain.Principal, noteID string, public bool) (*domain.Note, error)
	delete        func(ctx context.Context, p domain.Principal, noteID string) error
	listOwn       func(ctx context.Context, p domain.Principal) ([]*domain.Note, error)
	listAll       func(ctx context.Context) ([]*domain.Note, error)
	search        func(ctx context.Context, p domain.Principal, query string) ([]*domain.Note, error)
}

func (f *fakeNoteUsecase) Create(ctx context.Context, p domain.Principal, input usecase.CreateNoteInput) (*domain.Note, error) {
	return f.create(ctx, p, input)
}

func (f *fakeNoteUsecase) Get(ctx context.Context, p domain.Principal, noteID string) (*domain.Note, error) {
	return f.get(ctx, p, noteID)
}

func (f *fakeNoteUsecase) Update(ctx context.Context, p domain.Principal, noteID string, input usecase.UpdateNoteInput) (*domain.Note, error) {
	return f.update(ctx, p, noteID, input)
}

func (f *fakeNoteUsecase) SetPinned(ctx context.Context, p domain.Principal, noteID string, pinned bool) (*domain.Note, error) {
	return f.setPinned(ctx, p, noteID, pinned)
}

func (f *fakeNoteUsecase) SetVisibility(ctx context.Context, p domain.Principal, noteID string, public bool) (*domain.Note, error) {
	return f.setVisibility(ctx, p, noteID, public)
}

func (f *fakeNoteUsecase) Delete(ctx context.Context, p domain.Principal, noteID string) error {
	return f.delete(ctx, p, noteID)
}

func (f *fakeNoteUsecase) ListOwn(ctx context.Context, p domain.Principal) ([]*domain.Note, error) {
	return f.listOwn(ctx, p)
}

func (f *fakeNoteUsecase) ListAllPinnedFirst(ctx context.Context) ([]*domain.Note, error) {
	return f.listAll(ctx)
}

func (f *fakeNoteUsecase) Search(ctx context.Context, p domain.Principal, query string) ([]*domain.Note, error) {
	return f.search(ctx, p, query)
}

func newNoteEngine(uc *fakeNoteUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewNoteHandler(uc, logger)
	auth := middleware.Auth(testTokens(), middleware.BearerOnly)

	r := gin.New()
	g := r.Group("/", auth)
	g.POST("/add-note", h.Add)
	g.PUT("/edit-note/:id", h.Edit)
	g.PUT("/update-note-pinned/:id", h.TogglePin)
	g.PUT("/notes/:id/visibility", h.SetVisibility)
	g.DELETE("/delete-note/:id", h.Delete)
	g.GET("/get-all-notes", h.ListOwn)
	g.GET("/get-note/:id", h.GetByID)
	g.GET("/search-notes", h.Search)
	r.GET("/notes", h.ListAll)
	return r
}

func authedJSON(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	signed, err := testTokens().Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+signed)
	return req
}

// ---- Add ----

func TestAddNote_MissingToken_Returns401(t *testing.T) {
	uc := &fakeNoteUsecase{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/add-note", strings.NewReader(`{"title":"T","content":"C"}`))
	req.Header.Set("Content-Type", "application/json")
	newNoteEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAddNote_MissingTitle_Returns400(t *testing.T) {
	uc := &fakeNoteUsecase{}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodPost, "/add-note", `{"content":"C"}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAddNote_Valid_Returns201WithNote(t *testing.T) {
	uc := &fakeNoteUsecase{
		create: func(_ context.Context, p domain.Principal, input usecase.CreateNoteInput) (*domain.Note, error) {
			return &domain.Note{ID: "note-1", UserID: p.UserID, Title: input.Title, Content: input.Content, Tags: input.Tags}, nil
		},
	}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodPost, "/add-note",
		`{"title":"T","content":"C","tags":["a","b"]}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"note-1"`) {
		t.Errorf("body %q missing note id", w.Body.String())
	}
}

// ---- Edit ----

func TestEditNote_NoChanges_Returns400(t *testing.T) {
	uc := &fakeNoteUsecase{
		update: func(_ context.Context, _ domain.Principal, _ string, _ usecase.UpdateNoteInput) (*domain.Note, error) {
			return nil, domain.ErrEmptyUpdate
		},
	}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodPut, "/edit-note/note-1", `{}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestEditNote_NotOwned_Returns404(t *testing.T) {
	uc := &fakeNoteUsecase{
		update: func(_ context.Context, _ domain.Principal, _ string, _ usecase.UpdateNoteInput) (*domain.Note, error) {
			return nil, domain.ErrNoteNotFound
		},
	}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodPut, "/edit-note/note-x", `{"title":"new"}`))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestEditNote_PassesOnlySuppliedFields(t *testing.T) {
	var captured usecase.UpdateNoteInput
	uc := &fakeNoteUsecase{
		update: func(_ context.Context, _ domain.Principal, _ string, input usecase.UpdateNoteInput) (*domain.Note, error) {
			captured = input
			return &domain.Note{ID: "note-1"}, nil
		},
	}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodPut, "/edit-note/note-1",
		`{"title":"new","isPinned":false}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if captured.Title == nil || *captured.Title != "new" {
		t.Error("title not passed")
	}
	if captured.IsPinned == nil || *captured.IsPinned != false {
		t.Error("explicit isPinned=false not passed")
	}
	if captured.Content != nil || captured.Tags != nil {
		t.Error("absent fields must stay nil")
	}
}

// ---- TogglePin ----

func TestTogglePin_FalseIsHonored(t *testing.T) {
	var gotPinned *bool
	uc := &fakeNoteUsecase{
		setPinned: func(_ context.Context, _ domain.Principal, _ string, pinned bool) (*domain.Note, error) {
			gotPinned = &pinned
			return &domain.Note{ID: "note-1", IsPinned: pinned}, nil
		},
	}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodPut, "/update-note-pinned/note-1",
		`{"isPinned":false}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotPinned == nil || *gotPinned != false {
		t.Error("isPinned=false was not forwarded")
	}
}

func TestTogglePin_MissingField_Returns400(t *testing.T) {
	uc := &fakeNoteUsecase{}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodPut, "/update-note-pinned/note-1", `{}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ---- Visibility ----

func TestSetVisibility_TogglesPublic(t *testing.T) {
	var gotPublic bool
	uc := &fakeNoteUsecase{
		setVisibility: func(_ context.Context, _ domain.Principal, _ string, public bool) (*domain.Note, error) {
			gotPublic = public
			return &domain.Note{ID: "note-1", IsPublic: public}, nil
		},
	}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodPut, "/notes/note-1/visibility",
		`{"isPublic":true}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !gotPublic {
		t.Error("isPublic=true was not forwarded")
	}
}

// ---- Delete ----

func TestDeleteNote_NotFound_Returns404(t *testing.T) {
	uc := &fakeNoteUsecase{
		delete: func(_ context.Context, _ domain.Principal, _ string) error {
			return domain.ErrNoteNotFound
		},
	}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodDelete, "/delete-note/gone", ""))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

// ---- Get ----

func TestGetNote_NotOwned_Returns404(t *testing.T) {
	uc := &fakeNoteUsecase{
		get: func(_ context.Context, _ domain.Principal, _ string) (*domain.Note, error) {
			return nil, domain.ErrNoteNotFound
		},
	}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodGet, "/get-note/note-x", ""))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

// ---- Search ----

func TestSearchNotes_EmptyQuery_Returns400(t *testing.T) {
	uc := &fakeNoteUsecase{
		search: func(_ context.Context, _ domain.Principal, _ string) ([]*domain.Note, error) {
			return nil, domain.ErrEmptyQuery
		},
	}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodGet, "/search-notes", ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSearchNotes_ForwardsQuery(t *testing.T) {
	var gotQuery string
	uc := &fakeNoteUsecase{
		search: func(_ context.Context, _ domain.Principal, query string) ([]*domain.Note, error) {
			gotQuery = query
			return []*domain.Note{}, nil
		},
	}
	w := httptest.NewRecorder()
	newNoteEngine(uc).ServeHTTP(w, authedJSON(t, http.MethodGet, "/search-notes?query=hello", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotQuery != "hello" {
		t.Errorf("query = %q, want hello", gotQuery)
	}
}

// ---- Legacy global listing ----

func TestListAllNotes_NoAuthRequired(t *testing.T) {
	uc := &fakeNoteUsecase{
		listAll: func(_ context.Context) ([]*domain.Note, error) {
			return []*domain.Note{{ID: "note-1", Title: "T", Content: "C"}}, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	newNoteEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"note-1"`) {
		t.Errorf("body %q missing note", w.Body.String())
	}
}

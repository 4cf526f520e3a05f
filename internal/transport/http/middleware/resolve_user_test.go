package middleware_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orayachan/notesapp-backend/internal/domain"
	"github.com/orayachan/notesapp-backend/internal/transport/http/middleware"
)

type fakeUserRepo struct {
	findByID func(ctx context.Context, id string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(_ context.Context, _, _, _ string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func newResolveEngine(repo *fakeUserRepo) *gin.Engine {
	tokens := newTokens(time.Hour)
	r := gin.New()
	r.GET("/protected",
		middleware.Auth(tokens, middleware.BearerOnly),
		middleware.ResolveUser(repo, slog.Default()),
		func(c *gin.Context) {
			p, _ := middleware.PrincipalFrom(c)
			c.String(http.StatusOK, "%s|%s|%s", p.UserID, p.FullName, p.Email)
		})
	return r
}

func authedRequest(t *testing.T, userID string) *http.Request {
	t.Helper()
	signed, err := newTokens(time.Hour).Issue(userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	return req
}

func TestResolveUser_EnrichesPrincipal(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, FullName: "Test User", Email: "test@example.com"}, nil
		},
	}

	w := httptest.NewRecorder()
	newResolveEngine(repo).ServeHTTP(w, authedRequest(t, "user-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got, want := w.Body.String(), "user-1|Test User|test@example.com"; got != want {
		t.Errorf("principal = %q, want %q", got, want)
	}
}

func TestResolveUser_DeletedUser_Returns401(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	w := httptest.NewRecorder()
	newResolveEngine(repo).ServeHTTP(w, authedRequest(t, "user-gone"))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestResolveUser_StoreFailure_Returns500(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, errors.New("db down")
		},
	}

	w := httptest.NewRecorder()
	newResolveEngine(repo).ServeHTTP(w, authedRequest(t, "user-1"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

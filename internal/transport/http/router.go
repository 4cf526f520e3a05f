package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/orayachan/notesapp-backend/internal/repository"
	"github.com/orayachan/notesapp-backend/internal/token"
	"github.com/orayachan/notesapp-backend/internal/transport/http/handler"
	"github.com/orayachan/notesapp-backend/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
	publicHandler *handler.PublicHandler,
	tokens *token.Service,
	userRepo repository.UserRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	bearerAuth := middleware.Auth(tokens, middleware.BearerOnly)
	sessionAuth := middleware.Auth(tokens, middleware.BearerOrCookie)
	resolveUser := middleware.ResolveUser(userRepo, logger)

	// Auth routes
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/cookie/login", authHandler.CookieLogin)
	r.POST("/auth/logout", authHandler.Logout)
	r.GET("/auth/verify", authHandler.Verify)
	r.GET("/auth/profile", bearerAuth, authHandler.Profile)

	// Owner-scoped note routes; browser clients authenticate via the
	// session cookie, API clients via the bearer header.
	notes := r.Group("/", sessionAuth, resolveUser)
	notes.POST("/add-note", noteHandler.Add)
	notes.PUT("/edit-note/:id", noteHandler.Edit)
	notes.PUT("/update-note-pinned/:id", noteHandler.TogglePin)
	notes.PUT("/notes/:id/visibility", noteHandler.SetVisibility)
	notes.DELETE("/delete-note/:id", noteHandler.Delete)
	notes.GET("/get-all-notes", noteHandler.ListOwn)
	notes.GET("/get-note/:id", noteHandler.GetByID)
	notes.GET("/search-notes", noteHandler.Search)

	// Legacy unscoped listing: intentionally unauthenticated, exposes
	// every note across owners. Kept for the original admin view.
	r.GET("/notes", noteHandler.ListAll)

	// Public read-only routes
	r.GET("/public-profile/:userId", publicHandler.Profile)
	r.GET("/public-notes/:userId", publicHandler.ListNotes)
	r.GET("/public-notes/:userId/:noteId", publicHandler.GetNote)

	return r
}

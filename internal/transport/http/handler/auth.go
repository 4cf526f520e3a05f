package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orayachan/notesapp-backend/internal/domain"
	"github.com/orayachan/notesapp-backend/internal/metrics"
	"github.com/orayachan/notesapp-backend/internal/transport/http/middleware"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, fullName, email, rawPassword string) (*domain.User, error)
	Login(ctx context.Context, email, rawPassword string) (*domain.User, string, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

// tokenVerifier is the subset of the token service used by the inline
// verify endpoint.
type tokenVerifier interface {
	Verify(raw string) (string, error)
	TTL() time.Duration
}

type AuthHandler struct {
	authUsecase authUsecaser
	tokens      tokenVerifier
	production  bool
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, tokens tokenVerifier, production bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		tokens:      tokens,
		production:  production,
		logger:      logger.With("component", "auth_handler"),
	}
}

type userResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type registerRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errAllFieldsRequired})
		return
	}

	_, err := h.authUsecase.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": true, "message": errEmailTaken})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	metrics.RegistrationsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{"error": false, "message": "User registered successfully"})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
// Returns the bearer token in the response body; the client manages it.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errEmailAndPassword})
		return
	}

	_, signed, err := h.login(c, req)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{"error": false, "token": signed, "message": "Login successful"})
}

// POST /auth/cookie/login
// Same credential check, but the token is delivered as an HttpOnly cookie.
func (h *AuthHandler) CookieLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errEmailAndPassword})
		return
	}

	user, signed, err := h.login(c, req)
	if err != nil {
		return
	}

	h.setSessionCookie(c, signed, int(h.tokens.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"error":   false,
		"message": "Login successful",
		"user":    toUserResponse(user),
	})
}

// login runs the shared credential check and writes the error response
// itself; a non-nil error only signals the caller to stop.
func (h *AuthHandler) login(c *gin.Context, req loginRequest) (*domain.User, string, error) {
	user, signed, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": errInvalidCredentials})
			return nil, "", err
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, signed, nil
}

// GET /auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Unauthorized"})
		return
	}

	user, err := h.authUsecase.Profile(c.Request.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"error": false, "user": toUserResponse(user)})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"error": false, "message": "Logged out successfully"})
}

// GET /auth/verify
// Decodes the bearer token inline, without the auth middleware, so clients
// can check a stored token without hitting a protected resource.
func (h *AuthHandler) Verify(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": errTokenRequired})
		return
	}

	userID, err := h.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": errTokenInvalid})
		return
	}

	c.JSON(http.StatusOK, gin.H{"error": false, "userId": userID, "message": "Token is valid"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	if h.production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.production, true)
}

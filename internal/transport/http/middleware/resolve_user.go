package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orayachan/notesapp-backend/internal/domain"
	"github.com/orayachan/notesapp-backend/internal/repository"
)

// ResolveUser runs after Auth. It re-fetches the token's user and replaces
// the Principal with one carrying the denormalized display fields. A token
// whose user has since been deleted is rejected with 401.
func ResolveUser(repo repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": true, "message": errUnauthorized})
			return
		}

		user, err := repo.FindByID(c.Request.Context(), p.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					gin.H{"error": true, "message": errUnauthorized})
				return
			}
			logger.ErrorContext(c.Request.Context(), "resolve user", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": true, "message": "Internal server error"})
			return
		}

		setPrincipal(c, domain.Principal{
			UserID:   user.ID,
			FullName: user.FullName,
			Email:    user.Email,
		})
		c.Next()
	}
}

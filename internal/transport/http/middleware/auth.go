package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orayachan/notesapp-backend/internal/domain"
	"github.com/orayachan/notesapp-backend/internal/token"
)

const errUnauthorized = "Unauthorized"

// SessionCookie is the name of the cookie carrying the session token for
// browser clients.
const SessionCookie = "accessToken"

// TokenSource declares which carrier a route accepts.
type TokenSource int

const (
	BearerOnly TokenSource = iota
	CookieOnly
	BearerOrCookie
)

const principalKey = "principal"

// PrincipalFrom returns the Principal attached by Auth. The second return is
// false on routes not behind the middleware.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

func setPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// Auth locates a token per the route's carrier policy, verifies it, and
// attaches a Principal to the request. All verification failures collapse to
// a generic 401: the client is not told whether the token was malformed or
// expired.
func Auth(tokens *token.Service, source TokenSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := locateToken(c, source)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": errUnauthorized})
			return
		}

		userID, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": errUnauthorized})
			return
		}

		setPrincipal(c, domain.Principal{UserID: userID})
		c.Next()
	}
}

func locateToken(c *gin.Context, source TokenSource) (string, bool) {
	if source == BearerOnly || source == BearerOrCookie {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer "), true
		}
		if source == BearerOnly {
			return "", false
		}
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie == "" {
		return "", false
	}
	return cookie, true
}

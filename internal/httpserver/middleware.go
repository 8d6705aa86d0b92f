package httpserver

import (
	"context"
	"log"
	"net/http"
	"strings"

	"chickpick/internal/cart"
	"chickpick/internal/domain"

	"github.com/gin-gonic/gin"
)

type ctxKey string

const (
	userCtxKey        ctxKey = "currentUser"
	tokenCtxKey       ctxKey = "accessToken"
	cartSessionCtxKey ctxKey = "cartSession"
)

// cartSessionHeader carries the opaque cart session identifier. The server
// mints one on the first cart request and echoes it back so the client can
// pin its cart across requests.
const cartSessionHeader = "X-Cart-Session"

// authMiddleware resolves the bearer token into a profile when one is
// present. Resolution fails open: an invalid or expired token leaves the
// request anonymous rather than rejecting it.
func authMiddleware(identity identityService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}
		ctx := context.WithValue(c.Request.Context(), tokenCtxKey, token)
		user, err := identity.Current(ctx, token)
		if err != nil {
			logger.Printf("auth: resolve token: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		if user != nil {
			ctx = context.WithValue(ctx, userCtxKey, user)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin role required"})
			return
		}
		c.Next()
	}
}

// cartSessionMiddleware binds the request to a cart session. A missing
// header mints a fresh session; either way the session id is echoed back
// in the response header.
func cartSessionMiddleware(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(cartSessionHeader))
		if sessionID == "" {
			sessionID = carts.NewSessionID()
		}
		c.Header(cartSessionHeader, sessionID)
		ctx := context.WithValue(c.Request.Context(), cartSessionCtxKey, sessionID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func currentUser(c *gin.Context) *domain.Profile {
	user, _ := c.Request.Context().Value(userCtxKey).(*domain.Profile)
	return user
}

func accessToken(c *gin.Context) string {
	token, _ := c.Request.Context().Value(tokenCtxKey).(string)
	return token
}

func cartSessionID(c *gin.Context) string {
	id, _ := c.Request.Context().Value(cartSessionCtxKey).(string)
	return id
}

package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gameboxd/backend/pkg/jwt"
)

// ContextUserIDKey is the gin context key holding the authenticated user ID.
const ContextUserIDKey = "userID"

// AuthMiddleware rejects requests that do not carry a valid bearer token and
// sets the userID on the context for requests that do.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware inspects for a token and sets the userID if present and valid,
// but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c, secret); ok {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID from the context, or (0, false)
// when the request is anonymous.
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

func bearerUserID(c *gin.Context, secret string) (uint, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}
	userID, err := jwt.ParseToken(secret, parts[1])
	if err != nil {
		return 0, false
	}
	return userID, true
}

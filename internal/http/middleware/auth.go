package middleware

import (
	"net/http"

	"sparetime/internal/auth"
	"sparetime/internal/domain"

	"github.com/gin-gonic/gin"
)

const userIDKey = "auth_user_id"

// RequireAuth validates the bearer credential and attaches the derived user
// identity to the request context. It runs before any business logic; no
// handler may obtain a user id from anywhere but UserID.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.ParseBearer(secret, c.GetHeader("Authorization"))
		if err != nil {
			code := "invalid_credential"
			if domain.IsMalformedCredential(err) {
				code = "malformed_credential"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized",
				"code":       code,
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated identity set by RequireAuth, or "" when the
// request was not authenticated.
func UserID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AccessDeniedMessage is returned when the authorization predicate rejects a
// session.
const AccessDeniedMessage = "Acesso negado. Você não é um administrador."

// AdminChecker answers the server-side authorization predicate.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// AdminRequired verifies the authenticated user is an administrator. A check
// failure is treated the same as a denial: the session cookie is dropped so
// the client falls back to the login screen.
func AdminRequired(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(UserIDContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		userID, _ := val.(int64)

		admin, err := checker.IsAdmin(c.Request.Context(), userID)
		if err != nil || !admin {
			ClearAuthCookie(c)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": AccessDeniedMessage})
			return
		}

		c.Next()
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"giftfall/api/internal/config"
	"giftfall/api/internal/models"
	"giftfall/api/internal/security"
)

// UserLoader resolves the authenticated user from the token's subject.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

const (
	ContextUserKey   = "current_user"
	ContextClaimsKey = "access_claims"
)

func Auth(cfg *config.AppConfig, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "missing token")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseAccessToken(tokenStr, cfg.Security.JWTAccessSecret)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c, "user not found")
			return
		}

		c.Set(ContextClaimsKey, *claims)
		c.Set(ContextUserKey, user)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": 0,
		"message": message,
	})
}

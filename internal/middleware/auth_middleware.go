package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medidir/doctor-directory-api/internal/database/service"
)

// AuthMiddleware resolves bearer tokens to users
type AuthMiddleware struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(service service.AuthService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		service: service,
		logger:  logger,
	}
}

// RequireAuth validates the bearer token and sets the resolved user and
// token ID in the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.logger.Warn("⚠️ [Middleware] Missing Authorization header")
			abortUnauthorized(c, "Authorization header required.")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.logger.Warn("⚠️ [Middleware] Invalid Authorization header format")
			abortUnauthorized(c, "Invalid authorization header format.")
			return
		}

		user, tokenID, err := m.service.ValidateAccessToken(parts[1])
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			abortUnauthorized(c, "Invalid or expired token.")
			return
		}

		c.Set("authUser", user)
		c.Set("authTokenID", tokenID)
		m.logger.Debug("✅ [Middleware] Token validated", "user_id", user.ID)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":   true,
		"message": message,
	})
	c.Abort()
}

package middleware

import (
	"net/http"
	"strings"

	"flows-notify/pkg/config"
	"flows-notify/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// MiddlewareProvider defines the middleware surface used by the app.
type MiddlewareProvider interface {
	AdminAuth() gin.HandlerFunc
}

type middleware struct {
	cfg *config.Config
}

// NewMiddleware creates a new middleware instance.
func NewMiddleware(cfg *config.Config) MiddlewareProvider {
	return &middleware{cfg: cfg}
}

// AdminAuth guards operational endpoints with the admin API key. The
// configured value is a bcrypt hash so the plaintext key never lives in
// the environment. An empty hash leaves the endpoints open, which is
// only acceptable for local development.
func (m *middleware) AdminAuth() gin.HandlerFunc {
	if m.cfg.AdminAPIKeyHash == "" {
		logger.Warn("ADMIN_API_KEY_HASH not set, admin endpoints are unprotected")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			// fall back to a bearer token for clients that only speak Authorization
			authHeader := c.GetHeader("Authorization")
			key = strings.TrimPrefix(authHeader, "Bearer ")
			if key == authHeader {
				key = ""
			}
		}

		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(m.cfg.AdminAPIKeyHash), []byte(key)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Next()
	}
}

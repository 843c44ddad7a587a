package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminAPIKeyHeader carries the operator key for /admin routes.
const AdminAPIKeyHeader = "x-api-key"

// AdminAPIKeyAuth guards operator routes with a static API key. An empty
// configured key disables the routes entirely.
func AdminAPIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		if apiKey == "" {
			logger.Warn("Admin route called but no admin API key is configured")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin API is disabled"})
			return
		}

		provided := c.GetHeader(AdminAPIKeyHeader)
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "x-api-key header required"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			logger.Warn("Invalid admin API key")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid API key"})
			return
		}

		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), logger.With("auth", "admin_api_key")))
		c.Next()
	}
}

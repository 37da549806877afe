package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "x-api-key"

// APIKeyAuth guards a route group with a shared-secret header check.
// A missing key is unauthenticated (401), a wrong key is forbidden (403).
func APIKeyAuth(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if key == "" {
			RespondError(c, http.StatusUnauthorized, "missing API key")
			c.Abort()
			return
		}
		if key != expected {
			RespondError(c, http.StatusForbidden, "invalid API key")
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"crypto/subtle"
	"log/slog"

	"github.com/SscSPs/reconciliation_engine/internal/utils"
	"github.com/gin-gonic/gin"
)

// APIKeyHeader carries the static key of a machine client such as a point-of-sale sync job.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth authenticates machine clients by a static key. Requests without the header are
// passed on unchanged so AuthMiddleware can still authenticate them.
func APIKeyAuth(keys map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" || len(keys) == 0 {
			c.Next()
			return
		}

		for clientID, expected := range keys {
			if subtle.ConstantTimeCompare([]byte(key), []byte(expected)) == 1 {
				setUser(c, clientID, utils.RoleIntegration, "api_key")
				GetLoggerFromContext(c).Debug("Authenticated by API key", slog.String("client_id", clientID))
				c.Next()
				return
			}
		}

		GetLoggerFromContext(c).Warn("Unknown API key", slog.String("key", utils.MaskAPIKey(key)))
		c.Next()
	}
}

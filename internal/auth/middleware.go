package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/authgate/internal/logutil"
)

// ContextUserIDKey is where the middleware stores the verified token's
// user id. Handlers may read it, but the lookup route deliberately
// keys on the path id instead.
const ContextUserIDKey = "auth.userID"

// RequireToken returns the middleware guarding the protected routes.
// A missing or token-less Authorization header is denied with 401; a
// token that fails verification is rejected with 400.
func (m *Manager) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.Fields(header)
		if len(parts) < 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": msgAccessDenied})
			return
		}

		userID, err := m.tokens.Parse(parts[1])
		if err != nil {
			logger := logutil.GetOrDefault(c.Request.Context())
			logger.Debug().Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": msgBadSession})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

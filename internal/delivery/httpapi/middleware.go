package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// adminAuth guards the leader endpoints with a shared token, accepted as
// either a bearer token or the X-Admin-Token header. An empty configured
// token disables the check for local development.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.adminToken == "" {
			c.Next()
			return
		}

		token := c.GetHeader("X-Admin-Token")
		if token == "" {
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "管理密碼錯誤"})
			return
		}
		c.Next()
	}
}

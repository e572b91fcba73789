package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"SecretSanta/internal/auth"
)

// gin context keys
const (
	CtxGroupID     = "groupId"
	CtxParticipant = "participant"
)

// JwtAuthMiddleware 校验 reveal token，支持 Authorization: Bearer 或 ?token=（浏览器 websocket 无法带 header）
func JwtAuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c.GetHeader("Authorization"))
		if raw == "" {
			raw = c.Query("token")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := issuer.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(CtxGroupID, claims.GroupID)
		c.Set(CtxParticipant, claims.Participant)
		c.Next()
	}
}

func bearer(h string) string {
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

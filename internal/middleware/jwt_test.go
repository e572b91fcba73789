package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SecretSanta/internal/auth"
)

func newRouter(iss *auth.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JwtAuthMiddleware(iss), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"group": c.GetString(CtxGroupID),
			"name":  c.GetString(CtxParticipant),
		})
	})
	return r
}

func TestJwtAuthMiddleware(t *testing.T) {
	iss := auth.NewIssuer("secret", time.Hour)
	r := newRouter(iss)
	tok, err := iss.Issue("g1", "Coline")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		query  string
		code   int
	}{
		{"bearer header", "Bearer " + tok, "", http.StatusOK},
		{"lowercase bearer", "bearer " + tok, "", http.StatusOK},
		{"query token", "", "?token=" + tok, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"invalid", "Bearer nope", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.JSONEq(t, `{"group":"g1","name":"Coline"}`, w.Body.String())
			}
		})
	}
}

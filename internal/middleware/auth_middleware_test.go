package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmoreau/boutique-backend/pkg/util"
)

const testJWTSecret = "test-secret"

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := NewAuthMiddleware(testJWTSecret)
	r.GET("/admin/ping", auth.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString(AdminRoleKey)})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	router := setupAuthRouter()

	validToken, err := util.GenerateAdminToken(testJWTSecret, time.Hour)
	require.NoError(t, err)

	expiredToken, err := util.GenerateAdminToken(testJWTSecret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{
			name:       "Valid bearer token",
			header:     "Bearer " + validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Valid token via query parameter",
			query:      "?token=" + validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Malformed header",
			header:     "Token " + validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Expired token",
			header:     "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage token",
			header:     "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

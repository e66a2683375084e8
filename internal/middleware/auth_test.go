package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(APIKeyAuth(map[string]string{"pos-sync": "pos-key"}), AuthMiddleware(testSecret))
	whoami := func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		role, _ := GetRoleFromContext(c)
		c.String(http.StatusOK, userID+"/"+role)
	}
	r.GET("/read", whoami)
	r.POST("/write", RequireRole(utils.RoleFinance), whoami)
	return r
}

func bearer(t *testing.T, role string) map[string]string {
	t.Helper()
	token, err := utils.GenerateJWT("user-1", role, testSecret, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		wantCode int
		wantBody string
	}{
		{"no credentials", http.MethodGet, "/read", nil, http.StatusUnauthorized, ""},
		{"malformed header", http.MethodGet, "/read", map[string]string{"Authorization": "Token abc"}, http.StatusUnauthorized, ""},
		{"garbage token", http.MethodGet, "/read", map[string]string{"Authorization": "Bearer abc"}, http.StatusUnauthorized, ""},
		{"viewer reads", http.MethodGet, "/read", bearer(t, utils.RoleViewer), http.StatusOK, "user-1/viewer"},
		{"viewer cannot write", http.MethodPost, "/write", bearer(t, utils.RoleViewer), http.StatusForbidden, ""},
		{"finance writes", http.MethodPost, "/write", bearer(t, utils.RoleFinance), http.StatusOK, "user-1/finance"},
		{"api key", http.MethodGet, "/read", map[string]string{APIKeyHeader: "pos-key"}, http.StatusOK, "pos-sync/integration"},
		{"api key cannot write", http.MethodPost, "/write", map[string]string{APIKeyHeader: "pos-key"}, http.StatusForbidden, ""},
		{"unknown api key falls back to bearer", http.MethodGet, "/read", map[string]string{APIKeyHeader: "nope"}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.method, tt.path, tt.headers)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

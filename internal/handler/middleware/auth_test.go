//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-sync/internal/domain/user"
	"storefront-sync/internal/handler/middleware"
	"storefront-sync/internal/pkg/cookie"
	"storefront-sync/internal/pkg/jwt"
	"storefront-sync/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(secret, time.Minute)))

	whoami := func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.String(), "role": string(role)})
	}

	r := gin.New()
	r.GET("/optional", m.OptionalAuth(), whoami)
	admin := r.Group("/admin", m.RequireAuth(), m.RequireRoleAtLeast(user.RoleOperator))
	admin.GET("", whoami)
	return r
}

func token(t *testing.T, key string, role user.Role) string {
	t.Helper()
	tok, err := jwt.NewService(key, time.Minute).GenerateToken(uuid.New(), role)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name       string
		path       string
		setup      func(*http.Request)
		wantStatus int
		wantRole   string
	}{
		{
			name:       "success: admin passes operator gate via bearer header",
			path:       "/admin",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(t, secret, user.RoleAdmin)) },
			wantStatus: http.StatusOK,
			wantRole:   "admin",
		},
		{
			name: "success: access token cookie is accepted",
			path: "/admin",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: token(t, secret, user.RoleOperator)})
			},
			wantStatus: http.StatusOK,
			wantRole:   "operator",
		},
		{
			name:       "error: missing token",
			path:       "/admin",
			setup:      func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "error: token signed with another key",
			path:       "/admin",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(t, "other", user.RoleAdmin)) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "error: viewer below operator",
			path:       "/admin",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(t, secret, user.RoleViewer)) },
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "success: optional auth lets anonymous through",
			path:       "/optional",
			setup:      func(*http.Request) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "success: optional auth ignores a bad token",
			path:       "/optional",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer garbage") },
			wantStatus: http.StatusOK,
		},
		{
			name:       "success: optional auth picks up a valid token",
			path:       "/optional",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token(t, secret, user.RoleViewer)) },
			wantStatus: http.StatusOK,
			wantRole:   "viewer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			tt.setup(req)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"role":"`+tt.wantRole+`"`)
			}
		})
	}
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"libraryhub/internal/httpapi/middleware"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuthRouter(adminKeyHash string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("", middleware.AuthMiddleware(testSecret, adminKeyHash))
	authed.GET("/whoami", func(c *gin.Context) {
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	authed.GET("/admin-only", middleware.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := middleware.Claims{
		MemberID: 1,
		Email:    "ana@school.edu",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	r := newAuthRouter("")
	w := get(r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	r := newAuthRouter("")
	w := get(r, "/whoami", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	r := newAuthRouter("")
	w := get(r, "/whoami", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidJWT(t *testing.T) {
	r := newAuthRouter("")
	w := get(r, "/whoami", "Bearer "+signToken(t, "member"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "member")
}

func TestAuthAdminKeyFallback(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret-admin-key"), bcrypt.MinCost)
	require.NoError(t, err)

	r := newAuthRouter(string(hash))

	w := get(r, "/admin-only", "Bearer super-secret-admin-key")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/admin-only", "Bearer wrong-key")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminForbidsMembers(t *testing.T) {
	r := newAuthRouter("")
	w := get(r, "/admin-only", "Bearer "+signToken(t, "member"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	r := newAuthRouter("")
	w := get(r, "/admin-only", "Bearer "+signToken(t, "admin"))
	assert.Equal(t, http.StatusOK, w.Code)
}

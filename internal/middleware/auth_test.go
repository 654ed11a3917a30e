package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw)
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	r := newAuthRouter(RequireAuth(testSecret))

	t.Run("无 Token 返回 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Cookie 中的有效 Token 放行", func(t *testing.T) {
		token, err := GenerateToken(42, "reader@example.com", "free", testSecret, time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
	})

	t.Run("Authorization Header 中的 Token 放行", func(t *testing.T) {
		token, err := GenerateToken(7, "reader@example.com", "premium", testSecret, time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})

	t.Run("密钥不匹配的 Token 拒绝", func(t *testing.T) {
		token, err := GenerateToken(42, "reader@example.com", "free", "other-secret", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("过期 Token 拒绝", func(t *testing.T) {
		token, err := GenerateToken(42, "reader@example.com", "free", testSecret, -time.Minute)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	r := newAuthRouter(OptionalAuth(testSecret))

	t.Run("无 Token 也放行，用户 ID 为 0", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":0`)
	})

	t.Run("有 Token 时识别用户", func(t *testing.T) {
		token, err := GenerateToken(9, "reader@example.com", "free", testSecret, time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":9`)
	})
}

func TestSlidingRenewal(t *testing.T) {
	// 有效期已消耗过半时应签发新 Cookie
	r := newAuthRouter(RequireAuth(testSecret))

	claims := &Claims{UserID: 5, Email: "reader@example.com", Tier: "free"}
	claims.IssuedAt = jwt.NewNumericDate(time.Now().Add(-40 * time.Minute))
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(20 * time.Minute))
	require.True(t, shouldRefresh(claims))

	fresh := &Claims{UserID: 5}
	fresh.IssuedAt = jwt.NewNumericDate(time.Now())
	fresh.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	require.False(t, shouldRefresh(fresh))

	token, err := GenerateToken(5, "reader@example.com", "free", testSecret, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

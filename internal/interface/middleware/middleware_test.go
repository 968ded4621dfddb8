package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetInt64(CtxUserIDKey), "role": c.GetString(CtxRoleKey)})
	})
	return r
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Minute)
	r := newEngine(Auth(nil, jwt))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsBearerAndCookie(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Minute)
	token, _, err := jwt.GenerateAccessToken(7, "ADMIN", uuid.NewString())
	require.NoError(t, err)
	r := newEngine(Auth(nil, jwt))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":7,"role":"ADMIN"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Minute)
	userToken, _, err := jwt.GenerateAccessToken(2, "USER", "s")
	require.NoError(t, err)
	r := newEngine(Auth(nil, jwt), RequireRole("ADMIN"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"forbidden"`)
}

func TestRequestIDKeepsValidHeader(t *testing.T) {
	r := newEngine(RequestIDMiddleware())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRealIPPrefersForwardedHeaders(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "203.0.113.9", w.Body.String())

	req.Header.Set("CF-Connecting-IP", "198.51.100.4")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "198.51.100.4", w.Body.String())
}

func TestRateLimitWithoutRedisIsNoop(t *testing.T) {
	r := newEngine(RateLimit(nil, Limit{Max: 1, Window: time.Minute, Key: KeyByIP()}))
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateWindowHeaders(t *testing.T) {
	w := window{count: 3, ttl: 1500 * time.Millisecond}
	assert.Equal(t, 7, w.remaining(10))
	assert.Equal(t, 2, w.resetSeconds())

	over := window{count: 12, ttl: 0}
	assert.Equal(t, 0, over.remaining(10))
	assert.Equal(t, 0, over.resetSeconds())
}

func TestMetricsCountsByRouteTemplate(t *testing.T) {
	m := NewMetrics("test")
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/providers/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", m.Handler())

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/providers/"+id, nil))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(),
		`test_http_requests_total{method="GET",route="/providers/:id",status="204"} 2`))
}

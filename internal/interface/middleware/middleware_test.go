package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-todo/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func protected(jwt *helpers.JWTManager) *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(jwt), func(c *gin.Context) {
		who, ok := IdentityFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, who.UserID)
	})
	return r
}

func call(r http.Handler, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := protected(jwt)
	token, _, err := jwt.Issue("user-1")
	require.NoError(t, err)
	stale, _, err := jwt.IssueAt("user-1", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	foreign, _, err := helpers.NewJWTManager("other", time.Hour).Issue("user-1")
	require.NoError(t, err)

	cases := []struct {
		name   string
		authz  string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bare scheme", "Bearer", http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusForbidden},
		{"garbage", "Bearer not-a-jwt", http.StatusForbidden},
		{"expired", "Bearer " + stale, http.StatusForbidden},
		{"other secret", "Bearer " + foreign, http.StatusForbidden},
		{"valid", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := call(r, tc.authz)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "user-1", w.Body.String())
			}
		})
	}
}

func TestIdentityFrom_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := IdentityFrom(c)
	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	minted := w.Header().Get(RequestIDHeader)
	assert.Len(t, minted, 36)
	assert.Equal(t, minted, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "trace-abc", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "has space")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "has space", w.Header().Get(RequestIDHeader))
}

func TestRealIP(t *testing.T) {
	for _, tc := range []struct {
		trust bool
		want  string
	}{
		{true, "203.0.113.7"},
		{false, "192.0.2.1"},
	} {
		r := gin.New()
		r.Use(RealIP(tc.trust))
		r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:4000"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Body.String())
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{
		"127.0.0.1":   true,
		"10.1.2.3":    true,
		"192.168.0.9": true,
		"8.8.8.8":     false,
		"unknown":     false,
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("real_ip", ip)
		assert.Equal(t, want, allow(c), ip)
	}
}

func TestRateLimit_DisabledAndFailOpen(t *testing.T) {
	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = unreachable.Close() })

	for name, rdb := range map[string]*redis.Client{"nil client": nil, "redis down": unreachable} {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", RateLimit(rdb, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })
			for i := 0; i < 3; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
				assert.Equal(t, http.StatusNoContent, w.Code)
			}
		})
	}
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func limited(rdb *redis.Client, allow AllowFunc) *gin.Engine {
	r := gin.New()
	r.Use(RealIP(false))
	r.GET("/", RateLimit(rdb, 1, time.Minute, KeyByIP(), allow), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func hit(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_Exceeded(t *testing.T) {
	mr, rdb := newRedis(t)
	r := limited(rdb, nil)

	w := hit(r, "203.0.113.7:4000")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("X-RateLimit-Reset"))

	w = hit(r, "203.0.113.7:4001")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	var body struct {
		Status  int    `json:"status"`
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusTooManyRequests, body.Status)
	assert.False(t, body.Success)
	assert.Equal(t, "rate limit exceeded", body.Message)

	// a different client has its own budget
	assert.Equal(t, http.StatusNoContent, hit(r, "203.0.113.8:4000").Code)

	// the window expires
	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusNoContent, hit(r, "203.0.113.7:4002").Code)
}

func TestRateLimit_PrivateBypass(t *testing.T) {
	mr, rdb := newRedis(t)
	r := limited(rdb, AllowPrivateIP())

	for i := 0; i < 3; i++ {
		w := hit(r, "127.0.0.1:5000")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
	assert.Empty(t, mr.Keys())

	assert.Equal(t, http.StatusNoContent, hit(r, "198.51.100.9:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "198.51.100.9:5000").Code)
}

func TestRateLimit_OptionsNotCounted(t *testing.T) {
	mr, rdb := newRedis(t)
	r := gin.New()
	r.Handle(http.MethodOptions, "/", RateLimit(rdb, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
	assert.Empty(t, mr.Keys())
}

func TestKeys(t *testing.T) {
	r := gin.New()
	var ipKey, pathKey, userKey string
	r.GET("/api/todos/:id", func(c *gin.Context) {
		c.Set("real_ip", "198.51.100.2")
		ipKey = KeyByIP()(c)
		pathKey = KeyByIPAndPath()(c)
		c.Set(CtxUserIDKey, "u1")
		userKey = KeyByUserID()(c)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/todos/123", nil))

	assert.Equal(t, "rl:ip:198.51.100.2", ipKey)
	assert.Equal(t, "rl:path:/api/todos/:id:ip:198.51.100.2", pathKey)
	assert.Equal(t, "rl:user:u1", userKey)
}

func TestAccessLog(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	r := gin.New()
	r.Use(RequestID(), AccessLog(logger))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, http.StatusNotFound, entry.Data["status"])
	assert.Equal(t, "/missing", entry.Data["path"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

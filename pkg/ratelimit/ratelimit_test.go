package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"spreadedge/pkg/cache"
	"spreadedge/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:           true,
		WindowDuration:    time.Minute,
		DefaultRequests:   100,
		AuthRequests:      5,
		MarketRequests:    30,
		SignalsRequests:   20,
		CopyTradeRequests: 10,
		HealthRequests:    1000,
		WhitelistedIPs:    []string{"10.0.0.1"},
	}
}

func TestGetRateLimitType(t *testing.T) {
	cases := map[string]RateLimitType{
		"/health":                    RateLimitTypeHealth,
		"/ping":                      RateLimitTypeHealth,
		"/api/v1/status":             RateLimitTypeHealth,
		"/token":                     RateLimitTypeAuth,
		"/api/v1/refresh-token":      RateLimitTypeAuth,
		"/auth/register":             RateLimitTypeAuth,
		"/users/me":                  RateLimitTypeDefault,
		"/market/analysis":           RateLimitTypeMarket,
		"/market/:class":             RateLimitTypeMarket,
		"/signals":                   RateLimitTypeSignals,
		"/api/v1/copy-trade/toggle":  RateLimitTypeCopyTrade,
		"/api/v1/copy-trade/traders": RateLimitTypeCopyTrade,
		"":                           RateLimitTypeDefault,
	}
	for path, want := range cases {
		assert.Equal(t, want, getRateLimitType(path), path)
	}
}

func TestGetLimit(t *testing.T) {
	rl := NewRateLimiter(nil, testConfig())
	assert.Equal(t, 5, rl.getLimit(RateLimitTypeAuth))
	assert.Equal(t, 30, rl.getLimit(RateLimitTypeMarket))
	assert.Equal(t, 20, rl.getLimit(RateLimitTypeSignals))
	assert.Equal(t, 10, rl.getLimit(RateLimitTypeCopyTrade))
	assert.Equal(t, 1000, rl.getLimit(RateLimitTypeHealth))
	assert.Equal(t, 100, rl.getLimit(RateLimitTypeDefault))
}

func TestIsAllowed_BypassesRedis(t *testing.T) {
	ctx := context.Background()

	disabled := testConfig()
	disabled.Enabled = false
	res, err := NewRateLimiter(nil, disabled).IsAllowed(ctx, "192.0.2.1", RateLimitTypeAuth)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 5, res.Remaining)

	res, err = NewRateLimiter(nil, testConfig()).IsAllowed(ctx, "10.0.0.1", RateLimitTypeMarket)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 30, res.Limit)
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "10.0.0.3:1234", "203.0.113.7"},
		{"forwarded garbage", map[string]string{"X-Forwarded-For": "nope", "X-Real-IP": "198.51.100.4"}, "10.0.0.3:1234", "198.51.100.4"},
		{"remote addr", nil, "192.0.2.9:5555", "192.0.2.9"},
		{"remote without port", nil, "192.0.2.9", "192.0.2.9"},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = tc.remote
		for k, v := range tc.headers {
			c.Request.Header.Set(k, v)
		}
		assert.Equal(t, tc.want, getClientIP(c), tc.name)
	}
}

func TestMiddleware_SetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.Enabled = false

	r := gin.New()
	r.Use(Middleware(NewRateLimiter(nil, cfg), logger.Discard()))
	r.GET("/market/analysis", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/market/analysis", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "30", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "30", w.Header().Get("X-RateLimit-Remaining"))
}

// Runs against a live server when REDIS_TEST_ADDR is set
func TestMiddleware_LimitsWithRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	gin.SetMode(gin.TestMode)

	client, err := cache.Connect(context.Background(), cache.Config{Address: addr})
	require.NoError(t, err)
	defer client.Close()

	cfg := testConfig()
	cfg.AuthRequests = 2

	r := gin.New()
	r.Use(Middleware(NewRateLimiter(client, cfg), logger.Discard()))
	r.POST("/token", func(c *gin.Context) { c.Status(http.StatusOK) })

	ip := "192.0.2.77"
	require.NoError(t, client.Del(context.Background(), "spreadedge:ratelimit:"+ip+":auth").Err())
	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/token", nil)
		req.RemoteAddr = ip + ":4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

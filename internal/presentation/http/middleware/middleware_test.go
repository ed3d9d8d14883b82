package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/internal/config"
	"github.com/sangkips/salesdocs-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdocs-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("123456789abc"))
	assert.Equal(t, "", shortID(""))
}

func TestLoggerMiddlewareRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "x1")
	r.ServeHTTP(w, req)
	assert.Equal(t, "x1", w.Body.String())
	assert.Equal(t, "x1", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = w.Code
		if i == 2 {
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
			assert.Equal(t, "1", w.Header().Get("Retry-After"))
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, true, body["error"])
		}
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, rl.Stats()["active_clients"])

	rl.Stop()
	rl.Stop()
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(120, 60)
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 120, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFrom(0, 60))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, CleanupInterval: time.Hour, EntryTTL: time.Millisecond})
	defer rl.Stop()

	rl.getLimiter("10.0.0.1")
	time.Sleep(5 * time.Millisecond)
	rl.cleanup()
	assert.Equal(t, 0, rl.Stats()["active_clients"])
}

func TestIdempotencyReplaysCreate(t *testing.T) {
	db := testutil.NewTestDB(t)
	var calls int32

	r := gin.New()
	r.Use(Idempotency(IdempotencyConfig{Repo: repository.NewIdempotencyRepository(db)}))
	create := func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		if c.Query("fail") != "" {
			c.JSON(http.StatusBadRequest, gin.H{"n": n})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"n": n})
	}
	r.POST("/invoices", create)
	r.POST("/purchases", create)

	postTo := func(path, key, query string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path+query, strings.NewReader("{}"))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		r.ServeHTTP(w, req)
		return w
	}
	post := func(key, query string) *httptest.ResponseRecorder {
		return postTo("/invoices", key, query)
	}

	first := post("k1", "")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get(ReplayedHeader))

	again := post("k1", "")
	assert.Equal(t, http.StatusCreated, again.Code)
	assert.Equal(t, "true", again.Header().Get(ReplayedHeader))
	assert.JSONEq(t, first.Body.String(), again.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	post("", "")
	post("", "")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "requests without a key always run")

	failed := post("k2", "?fail=1")
	assert.Equal(t, http.StatusBadRequest, failed.Code)
	retried := post("k2", "")
	assert.Equal(t, http.StatusCreated, retried.Code)
	assert.Empty(t, retried.Header().Get(ReplayedHeader), "failures are not stored")

	before := atomic.LoadInt32(&calls)
	other := postTo("/purchases", "k1", "")
	assert.Equal(t, http.StatusCreated, other.Code)
	assert.Empty(t, other.Header().Get(ReplayedHeader), "a key used on one route does not replay on another")
	assert.Equal(t, before+1, atomic.LoadInt32(&calls))
	assert.NotEqual(t, first.Body.String(), other.Body.String())
	assert.Equal(t, "true", postTo("/purchases", "k1", "").Header().Get(ReplayedHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"http://app.test"}}))
	r.POST("/quotations", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/quotations", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", IdempotencyKeyHeader)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), strings.ToLower(IdempotencyKeyHeader))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/quotations", nil)
	req.Header.Set("Origin", "http://evil.test")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWithHeader(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, withHeader([]string{"A"}, "B"))
	assert.Equal(t, []string{"A", "B"}, withHeader([]string{"A", "B"}, "B"))
}

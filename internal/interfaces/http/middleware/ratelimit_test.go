package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, limit int, window time.Duration) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Stop)
	return rl
}

func limitedRequest(router *gin.Engine, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":51234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBuckets(t *testing.T) {
	t.Run("allows up to the limit per key", func(t *testing.T) {
		limiter := newLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("clinic-7"), "request %d", i+1)
		}
		assert.False(t, limiter.Allow("clinic-7"))
	})

	t.Run("keys do not share a bucket", func(t *testing.T) {
		limiter := newLimiter(t, 1, time.Minute)

		assert.True(t, limiter.Allow("clinic-7"))
		assert.False(t, limiter.Allow("clinic-7"))
		assert.True(t, limiter.Allow("clinic-8"))
	})

	t.Run("window rollover refills the bucket", func(t *testing.T) {
		limiter := newLimiter(t, 1, 40*time.Millisecond)

		assert.True(t, limiter.Allow("clinic-7"))
		assert.False(t, limiter.Allow("clinic-7"))

		time.Sleep(50 * time.Millisecond)
		assert.True(t, limiter.Allow("clinic-7"))
	})

	t.Run("remaining does not consume tokens", func(t *testing.T) {
		limiter := newLimiter(t, 5, time.Minute)

		assert.Equal(t, 5, limiter.Remaining("clinic-7"))
		assert.Equal(t, 5, limiter.Remaining("clinic-7"))

		limiter.Allow("clinic-7")
		limiter.Allow("clinic-7")
		assert.Equal(t, 3, limiter.Remaining("clinic-7"))
	})

	t.Run("exact token count under concurrency", func(t *testing.T) {
		limiter := newLimiter(t, 50, time.Minute)

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 80; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("shared") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("serves within the limit and then rejects with 429", func(t *testing.T) {
		limiter := newLimiter(t, 2, time.Minute)
		router := gin.New()
		router.Use(RateLimit(limiter))
		router.GET("/api/v1/pricing/price-list", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 2; i++ {
			w := limitedRequest(router, "GET", "/api/v1/pricing/price-list", "10.0.0.1")
			require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		}

		w := limitedRequest(router, "GET", "/api/v1/pricing/price-list", "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("exposes limit headers on allowed requests", func(t *testing.T) {
		limiter := newLimiter(t, 5, time.Minute)
		router := gin.New()
		router.Use(RateLimit(limiter))
		router.GET("/api/v1/dashboard/stats", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := limitedRequest(router, "GET", "/api/v1/dashboard/stats", "10.0.0.1")
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("different IPs get separate budgets", func(t *testing.T) {
		limiter := newLimiter(t, 1, time.Minute)
		router := gin.New()
		router.Use(RateLimit(limiter))
		router.GET("/api/v1/pricing/price-list", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, limitedRequest(router, "GET", "/api/v1/pricing/price-list", "10.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, limitedRequest(router, "GET", "/api/v1/pricing/price-list", "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, limitedRequest(router, "GET", "/api/v1/pricing/price-list", "10.0.0.2").Code)
	})

	t.Run("authenticated clinics behind one NAT are isolated", func(t *testing.T) {
		limiter := newLimiter(t, 1, time.Minute)
		router := gin.New()
		clinic := "clinic-a"
		router.Use(func(c *gin.Context) {
			c.Set(JWTClinicIDKey, clinic)
			c.Next()
		})
		router.Use(RateLimit(limiter))
		router.GET("/api/v1/clinic/settings", func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, limitedRequest(router, "GET", "/api/v1/clinic/settings", "10.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, limitedRequest(router, "GET", "/api/v1/clinic/settings", "10.0.0.1").Code)

		// same IP, different clinic scope
		clinic = "clinic-b"
		assert.Equal(t, http.StatusOK, limitedRequest(router, "GET", "/api/v1/clinic/settings", "10.0.0.1").Code)
	})
}

func TestRateLimitByKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := newLimiter(t, 1, time.Minute)
	router := gin.New()
	router.Use(RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.GetHeader("X-Api-Key")
	}))
	router.GET("/api/v1/pricing/price-list", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(key string) int {
		req := httptest.NewRequest("GET", "/api/v1/pricing/price-list", nil)
		req.Header.Set("X-Api-Key", key)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("key-1"))
	assert.Equal(t, http.StatusTooManyRequests, send("key-1"))
	assert.Equal(t, http.StatusOK, send("key-2"))
}

func TestAuthRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("blocks with the auth-specific error code", func(t *testing.T) {
		limiter := newLimiter(t, 2, time.Minute)
		router := gin.New()
		router.Use(AuthRateLimit(limiter))
		router.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 2; i++ {
			require.Equal(t, http.StatusOK, limitedRequest(router, "POST", "/api/v1/auth/login", "10.0.0.9").Code)
		}

		w := limitedRequest(router, "POST", "/api/v1/auth/login", "10.0.0.9")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_RATE_LIMIT_EXCEEDED")
		assert.Contains(t, w.Body.String(), "Too many authentication attempts")
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("sets limit headers while allowed", func(t *testing.T) {
		limiter := newLimiter(t, 5, time.Minute)
		router := gin.New()
		router.Use(AuthRateLimit(limiter))
		router.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := limitedRequest(router, "POST", "/api/v1/auth/login", "10.0.0.9")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("auth prefix keeps buckets apart from the global limiter key space", func(t *testing.T) {
		limiter := newLimiter(t, 1, time.Minute)
		router := gin.New()

		auth := router.Group("/api/v1/auth")
		auth.Use(AuthRateLimit(limiter))
		auth.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

		api := router.Group("/api/v1")
		api.Use(RateLimit(limiter))
		api.GET("/pricing/price-list", func(c *gin.Context) { c.Status(http.StatusOK) })

		// consuming the auth bucket leaves the plain IP bucket intact
		require.Equal(t, http.StatusOK, limitedRequest(router, "POST", "/api/v1/auth/login", "10.0.0.9").Code)
		require.Equal(t, http.StatusTooManyRequests, limitedRequest(router, "POST", "/api/v1/auth/login", "10.0.0.9").Code)
		assert.Equal(t, http.StatusOK, limitedRequest(router, "GET", "/api/v1/pricing/price-list", "10.0.0.9").Code)
	})
}

func TestRateLimiterStop(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Stop()

	// limiter keeps working after the eviction goroutine exits
	assert.True(t, limiter.Allow("clinic-7"))
	assert.False(t, limiter.Allow("clinic-7"))
}

package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("logs request with method, path and status", func(t *testing.T) {
		log, logs := newObservedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/api/v1/pricing/price-list", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"services": []string{}})
		})

		req := httptest.NewRequest("GET", "/api/v1/pricing/price-list", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "HTTP Request", entries[0].Message)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

		fields := entries[0].ContextMap()
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/api/v1/pricing/price-list", fields["path"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	})

	t.Run("includes request id set by the request-id middleware", func(t *testing.T) {
		log, logs := newObservedLogger()

		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set("request_id", "req-42")
			c.Next()
		})
		router.Use(GinMiddleware(log))
		router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest("GET", "/health", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	})

	t.Run("logs query string when present", func(t *testing.T) {
		log, logs := newObservedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/api/v1/catalog/services", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest("GET", "/api/v1/catalog/services?page=2&search=crown", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "page=2&search=crown", entries[0].ContextMap()["query"])
	})

	t.Run("4xx logs at warn, 5xx at error", func(t *testing.T) {
		log, logs := newObservedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
		router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/broken", nil))

		entries := logs.All()
		require.Len(t, entries, 2)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, logs := newObservedLogger()

	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/panic", func(c *gin.Context) {
		panic("capacity is nil")
	})

	req := httptest.NewRequest("GET", "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Panic recovered", entries[0].Message)
	assert.Equal(t, "/panic", entries[0].ContextMap()["path"])
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the request-scoped logger", func(t *testing.T) {
		log, logs := newObservedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/", func(c *gin.Context) {
			GetGinLogger(c).Info("pricing a service")
			c.Status(http.StatusOK)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		var sawHandlerLog bool
		for _, e := range logs.All() {
			if e.Message == "pricing a service" {
				sawHandlerLog = true
				// scoped fields from the middleware carry over
				assert.Equal(t, "GET", e.ContextMap()["method"])
			}
		}
		assert.True(t, sawHandlerLog)
	})

	t.Run("falls back to a nop logger outside the middleware", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		log := GetGinLogger(c)
		require.NotNil(t, log)
		log.Info("must not panic")
	})
}

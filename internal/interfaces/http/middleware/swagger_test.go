package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func swaggerRouter(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, jwtMiddleware), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"title": "DentalCalc Pricing API"})
	})
	return router
}

func swaggerRequest(router *gin.Engine, remoteIP string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/swagger/index.html", nil)
	if remoteIP != "" {
		req.RemoteAddr = remoteIP + ":44321"
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection(t *testing.T) {
	t.Run("disabled hides the docs behind 404", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{Enabled: false}, nil)

		w := swaggerRequest(router, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not_found")
	})

	t.Run("enabled with no restrictions serves the docs", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{Enabled: true}, nil)

		w := swaggerRequest(router, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "DentalCalc")
	})

	t.Run("allowlisted office IP passes", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"127.0.0.1"},
		}, nil)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "127.0.0.1").Code)
	})

	t.Run("outside address is rejected with 403", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"10.0.0.1"},
		}, nil)

		w := swaggerRequest(router, "192.168.1.30")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "restricted")
	})

	t.Run("CIDR range covers the whole office network", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"10.0.0.0/8"},
		}, nil)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "10.50.100.200").Code)
		assert.Equal(t, http.StatusForbidden, swaggerRequest(router, "192.168.1.30").Code)
	})

	t.Run("malformed allowlist entries are ignored", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"not-an-ip", "300.1.2.3/8", "127.0.0.1"},
		}, nil)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "127.0.0.1").Code)
		assert.Equal(t, http.StatusForbidden, swaggerRequest(router, "192.168.1.30").Code)
	})

	t.Run("auth required defers to the JWT middleware", func(t *testing.T) {
		deny := func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		}
		router := swaggerRouter(SwaggerConfig{Enabled: true, RequireAuth: true}, deny)

		assert.Equal(t, http.StatusUnauthorized, swaggerRequest(router, "").Code)
	})

	t.Run("auth required passes an authenticated staff user", func(t *testing.T) {
		allow := func(c *gin.Context) {
			c.Set(JWTUserIDKey, "staff-1")
			c.Next()
		}
		router := swaggerRouter(SwaggerConfig{Enabled: true, RequireAuth: true}, allow)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "").Code)
	})

	t.Run("allowlist is checked before auth", func(t *testing.T) {
		allow := func(c *gin.Context) { c.Next() }
		router := swaggerRouter(SwaggerConfig{
			Enabled:     true,
			RequireAuth: true,
			AllowedIPs:  []string{"127.0.0.1"},
		}, allow)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "127.0.0.1").Code)
		assert.Equal(t, http.StatusForbidden, swaggerRequest(router, "192.168.1.30").Code)
	})
}

func TestIPAllowlist(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		ip      string
		want    bool
	}{
		{"exact match", []string{"192.168.1.1"}, "192.168.1.1", true},
		{"sibling address", []string{"192.168.1.1"}, "192.168.1.2", false},
		{"inside CIDR", []string{"10.0.0.0/8"}, "10.0.0.5", true},
		{"outside CIDR", []string{"10.0.0.0/8"}, "11.0.0.5", false},
		{"IPv6 loopback", []string{"::1"}, "::1", true},
		{"mixed entries", []string{"10.0.0.0/8", "::1"}, "::1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := newIPAllowlist(tt.entries)
			assert.Equal(t, tt.want, list.allows(net.ParseIP(tt.ip)))
		})
	}

	t.Run("nil IP never passes", func(t *testing.T) {
		list := newIPAllowlist([]string{"10.0.0.0/8"})
		assert.False(t, list.allows(nil))
	})

	t.Run("empty reports no usable entries", func(t *testing.T) {
		assert.True(t, newIPAllowlist(nil).empty())
		assert.True(t, newIPAllowlist([]string{"garbage"}).empty())
		assert.False(t, newIPAllowlist([]string{"127.0.0.1"}).empty())
	})
}

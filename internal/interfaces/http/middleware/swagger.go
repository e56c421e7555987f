package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SwaggerConfig controls access to the generated API documentation.
// The docs describe every pricing and catalog endpoint, so production
// deployments usually restrict them to the office network or require
// a staff login.
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool     // run the JWT middleware before serving docs
	AllowedIPs  []string // single IPs or CIDR ranges; empty allows everyone
}

// ipAllowlist is a parsed SwaggerConfig.AllowedIPs. Parsing happens once
// at middleware construction, not per request.
type ipAllowlist struct {
	ips  []net.IP
	nets []*net.IPNet
}

func newIPAllowlist(entries []string) ipAllowlist {
	var list ipAllowlist
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				list.nets = append(list.nets, network)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			list.ips = append(list.ips, ip)
		}
	}
	return list
}

func (l ipAllowlist) empty() bool {
	return len(l.ips) == 0 && len(l.nets) == 0
}

func (l ipAllowlist) allows(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range l.ips {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range l.nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// SwaggerProtection gates the documentation routes. A disabled config
// answers 404 so the deployment does not reveal that docs exist at all;
// an allowlist rejects outside addresses with 403; RequireAuth defers
// to the supplied JWT middleware.
func SwaggerProtection(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) gin.HandlerFunc {
	allowlist := newIPAllowlist(cfg.AllowedIPs)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "API documentation is not available",
			})
			return
		}

		if !allowlist.empty() && !allowlist.allows(requestIP(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Access to API documentation is restricted",
			})
			return
		}

		if cfg.RequireAuth && jwtMiddleware != nil {
			jwtMiddleware(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}

// requestIP resolves the caller's address, preferring gin's ClientIP
// (which honors trusted proxy headers) over the raw RemoteAddr.
func requestIP(c *gin.Context) net.IP {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}

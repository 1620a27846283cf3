package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSPolicy accepts requests from an explicit origin allow-list plus any
// origin whose host ends with a trusted deployment-platform suffix
// (e.g. ".vercel.app"). Enforcement happens before any route handler.
type CORSPolicy struct {
	allowed          map[string]struct{}
	trustedSuffixes  []string
	allowEmptyOrigin bool
}

func NewCORSPolicy(origins, trustedSuffixes []string, allowEmptyOrigin bool) *CORSPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimSuffix(o, "/")] = struct{}{}
	}
	return &CORSPolicy{
		allowed:          allowed,
		trustedSuffixes:  trustedSuffixes,
		allowEmptyOrigin: allowEmptyOrigin,
	}
}

// Allowed reports whether a request carrying the given Origin header may
// proceed. An empty origin (curl, same-origin, health probes) is allowed
// only when the policy was built for non-production use.
func (p *CORSPolicy) Allowed(origin string) bool {
	if origin == "" {
		return p.allowEmptyOrigin
	}
	origin = strings.TrimSuffix(origin, "/")
	if _, ok := p.allowed[origin]; ok {
		return true
	}
	for _, suffix := range p.trustedSuffixes {
		if strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

func (p *CORSPolicy) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !p.Allowed(origin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "CORS policy blocked this request",
			})
			return
		}

		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

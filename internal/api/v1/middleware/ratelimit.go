package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/pkg/httpext"
	"github.com/deepgram/gemini-mcp/pkg/logger"
	"github.com/deepgram/gemini-mcp/pkg/ratelimit"
)

// RateLimit limits requests per client IP. When the store fails the request
// is let through; an unavailable Redis should not take the tools down.
func RateLimit(cfg config.RateLimitConfig, store ratelimit.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || store == nil {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			allowed, err := store.Allow(r.Context(), ip)
			if err != nil {
				logger.Error(logger.MIDDLEWARE, "Rate limit store failed for %s (request %s): %v", cfg.Key, GetRequestID(r), err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn(logger.MIDDLEWARE, "Rate limit exceeded for %s on %s (request %s)", ip, cfg.Key, GetRequestID(r))
				httpext.JsonError(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Use X-Forwarded-For if behind proxy, otherwise remote address
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

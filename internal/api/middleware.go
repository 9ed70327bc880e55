package api

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// Limiter decides whether a caller may run another generation in the
// current window. Implementations fail open on backend errors.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// RateLimit throttles generation endpoints per caller. Signed-in callers
// are keyed by user id so the limit follows them across devices; anonymous
// callers are keyed by client IP.
func RateLimit(limiter Limiter, sessions SessionResolver, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if session := sessions.Resolve(r); session != nil {
				key = "user:" + session.UserID
			}

			if !limiter.Allow(r.Context(), key, limit, window) {
				respondError(w, http.StatusTooManyRequests, "Too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the original client.
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

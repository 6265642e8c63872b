package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"staffsync/internal/transport/http/api"
)

type rateLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	window time.Time
	perMin int
}

// RateLimit applies a fixed per-minute request budget per client IP.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	limiter := &rateLimiter{counts: make(map[string]int), window: time.Now().Truncate(time.Minute), perMin: perMinute}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientIP(r), time.Now()) {
				api.Fail(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *rateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	window := now.Truncate(time.Minute)
	if !window.Equal(l.window) {
		l.window = window
		l.counts = make(map[string]int)
	}

	l.counts[ip]++
	return l.counts[ip] <= l.perMin
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

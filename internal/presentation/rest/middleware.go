package rest

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gagankishoreint-glitch/credai/pkg/auth"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every HTTP request with method, path, status, duration, and remote address.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// Buckets idle longer than idleBucketTTL are evicted once the limiter
// tracks maxBuckets clients.
const (
	idleBucketTTL = time.Minute
	maxBuckets    = 10_000
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter is a token bucket per client. Authenticated callers are keyed
// by user ID, anonymous ones by remote IP.
type RateLimiter struct {
	mu      sync.Mutex
	rate    float64 // tokens per second, also the burst size
	buckets map[string]*bucket
	now     func() time.Time
}

// NewRateLimiter creates a limiter that allows rps requests per second per client.
func NewRateLimiter(rps int) *RateLimiter {
	return &RateLimiter{
		rate:    float64(rps),
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow reports whether a request from client is permitted, consuming one
// token if so.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[client]
	if !ok {
		if len(rl.buckets) >= maxBuckets {
			rl.evictIdle(now)
		}
		b = &bucket{tokens: rl.rate, lastRefill: now}
		rl.buckets[client] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * rl.rate
	if b.tokens > rl.rate {
		b.tokens = rl.rate
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	for k, b := range rl.buckets {
		if now.Sub(b.lastRefill) > idleBucketTTL {
			delete(rl.buckets, k)
		}
	}
}

// RateLimitMiddleware applies per-client rate limiting. Paths in skipPaths
// are never limited.
func RateLimitMiddleware(limiter *RateLimiter, skipPaths []string) func(http.Handler) http.Handler {
	skipSet := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skipSet[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := skipSet[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}
			if !limiter.Allow(clientKey(r)) {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		return "user:" + claims.UserID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

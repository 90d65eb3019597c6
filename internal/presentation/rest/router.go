package rest

import (
	"log/slog"
	"net/http"

	"github.com/gagankishoreint-glitch/credai/pkg/auth"
)

// Paths served without a bearer token.
var publicPaths = []string{"/healthz", "/readyz", "/metrics"}

// RouterConfig collects the pieces NewRouter assembles.
type RouterConfig struct {
	API       *APIHandler
	Health    *HealthHandler
	Metrics   http.Handler // optional
	Validator auth.TokenValidator
	// RateLimiter is optional; nil disables limiting.
	RateLimiter *RateLimiter
	Logger      *slog.Logger
}

// NewRouter builds the HTTP handler. Requests pass through logging, then
// authentication, then rate limiting before reaching the mux.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	cfg.Health.RegisterRoutes(mux)
	cfg.API.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	// Applied in reverse order.
	var h http.Handler = mux
	if cfg.RateLimiter != nil {
		h = RateLimitMiddleware(cfg.RateLimiter, publicPaths)(h)
	}
	h = auth.HTTPMiddleware(cfg.Validator, publicPaths)(h)
	h = LoggingMiddleware(cfg.Logger)(h)
	return h
}

// Package server middleware for rate limiting and CORS.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

// rateLimiterConfig holds rate limiting configuration
type rateLimiterConfig struct {
	enabled       bool
	requestsPerIP int           // Max requests per IP per window
	window        time.Duration // Time window for rate limiting
}

// loadRateLimiterConfig reads rate limiter configuration from environment
func loadRateLimiterConfig() *rateLimiterConfig {
	enabled := os.Getenv("RATE_LIMIT_ENABLED") != "0" // Enabled by default
	requestsPerIP := getEnvInt("RATE_LIMIT_REQUESTS_PER_IP", 30)
	window := time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second

	return &rateLimiterConfig{
		enabled:       enabled,
		requestsPerIP: requestsPerIP,
		window:        window,
	}
}

// ipRateLimiter implements a simple sliding window rate limiter per IP
type ipRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	cfg      *rateLimiterConfig
}

type visitor struct {
	requests  []time.Time
	lastClean time.Time
}

// newIPRateLimiter creates a new rate limiter
func newIPRateLimiter(ctx context.Context, cfg *rateLimiterConfig) *ipRateLimiter {
	limiter := &ipRateLimiter{
		visitors: make(map[string]*visitor),
		cfg:      cfg,
	}

	// Start cleanup goroutine to remove stale entries
	go limiter.cleanupLoop(ctx)

	return limiter
}

// cleanupLoop periodically removes stale visitor entries
func (rl *ipRateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-ctx.Done():
			return
		}
	}
}

// cleanup removes visitors that haven't made requests recently
func (rl *ipRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, v := range rl.visitors {
		// Remove if no requests in the last 2 windows
		if now.Sub(v.lastClean) > rl.cfg.window*2 {
			delete(rl.visitors, ip)
		}
	}
}

// allow checks if a request from the given IP should be allowed
func (rl *ipRateLimiter) allow(ip string) bool {
	if !rl.cfg.enabled {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{
			requests:  []time.Time{now},
			lastClean: now,
		}
		rl.visitors[ip] = v
		return true
	}

	// Remove old requests outside the window
	cutoff := now.Add(-rl.cfg.window)
	filtered := make([]time.Time, 0, len(v.requests))
	for _, t := range v.requests {
		if t.After(cutoff) {
			filtered = append(filtered, t)
		}
	}
	v.requests = filtered
	v.lastClean = now

	// Check if under limit
	if len(v.requests) >= rl.cfg.requestsPerIP {
		return false
	}

	// Allow request and record it
	v.requests = append(v.requests, now)
	return true
}

// rateLimitMiddleware applies rate limiting to expensive endpoints
func rateLimitMiddleware(next http.Handler, limiter *ipRateLimiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract IP from request (handle X-Forwarded-For for proxies)
		ip := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			// Take the first IP in the list (client IP)
			if idx := strings.Index(forwarded, ","); idx >= 0 {
				ip = strings.TrimSpace(forwarded[:idx])
			} else {
				ip = strings.TrimSpace(forwarded)
			}
		}
		// Strip port if present
		if idx := strings.LastIndex(ip, ":"); idx >= 0 {
			ip = ip[:idx]
		}

		if !limiter.allow(ip) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too Many Requests - rate limit exceeded", http.StatusTooManyRequests)
			slog.Warn("rate limit exceeded", slog.String("ip", ip), slog.String("path", r.URL.Path))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// corsConfig holds CORS configuration
type corsConfig struct {
	allowedOrigins []string
	permissive     bool // True for dev mode (allow all), false for production (restricted)
}

// loadCORSConfig reads CORS configuration from environment
func loadCORSConfig() *corsConfig {
	// Default to permissive in dev, restricted in production
	mode := strings.ToLower(os.Getenv("ENV"))
	permissive := mode == "" || mode == "dev" || mode == "development"

	// Allow explicit override
	if v := os.Getenv("CORS_PERMISSIVE"); v != "" {
		permissive = v == "1" || v == "true"
	}

	allowedOrigins := []string{}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	if !permissive && len(allowedOrigins) == 0 {
		slog.Warn("CORS restricted mode enabled but no CORS_ALLOWED_ORIGINS configured - all CORS requests will be blocked")
	}

	return &corsConfig{
		allowedOrigins: allowedOrigins,
		permissive:     permissive,
	}
}

// withCORSConfig wraps a handler with CORS headers based on configuration
func withCORSConfig(next http.Handler, cfg *corsConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if cfg.permissive {
			// Dev mode: permissive CORS (allow all)
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Correlation-ID")
		} else {
			// Production mode: restricted CORS (allow only configured origins)
			if origin != "" && isOriginAllowed(origin, cfg.allowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Correlation-ID")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
		}

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isOriginAllowed checks if an origin is in the allowed list
func isOriginAllowed(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

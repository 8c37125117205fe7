// Package server exposes the HTTP API: health, status, metrics, the byline
// endpoint, and the chat push streams used by browser overlays. It includes
// permissive CORS for development and injects correlation IDs into request
// contexts for consistent logging.
package server

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onnwee/byline-relay/telemetry"
)

// NewMux returns the HTTP handler with all routes. The provided context is
// used for the rate limiter cleanup goroutine lifecycle.
func NewMux(ctx context.Context, handlers *Handlers) http.Handler {
	rateLimiterCfg := loadRateLimiterConfig()
	corsCfg := loadCORSConfig()
	rateLimiter := newIPRateLimiter(ctx, rateLimiterCfg)

	mux := http.NewServeMux()

	// Metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Health and readiness endpoints
	mux.HandleFunc("/healthz", handlers.HandleHealthz)
	mux.HandleFunc("/readyz", handlers.HandleReadyz)
	mux.HandleFunc("/status", handlers.HandleStatus)

	// Byline extraction. Rate limited: every uncached request costs an
	// upstream mirror fetch.
	mux.Handle("/byline", rateLimitMiddleware(http.HandlerFunc(handlers.HandleByline), rateLimiter))

	// Chat push streams: /chat/{room}/sse and /chat/{room}/ws
	mux.HandleFunc("/chat/", handlers.HandleChatDispatcher)

	// Wrap with correlation ID injector and tracing middleware
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Reuse corr header if provided else generate
		corr := r.Header.Get("X-Correlation-ID")
		if corr == "" {
			corr = uuid.New().String()
		}
		ctx := telemetry.WithCorrelation(r.Context(), corr)
		w.Header().Set("X-Correlation-ID", corr)

		ctx, span := telemetry.StartSpan(ctx, "http-server", r.Method+" "+r.URL.Path,
			telemetry.HTTPMethodAttr(r.Method),
			telemetry.HTTPRouteAttr(r.URL.Path),
			telemetry.HTTPURLAttr(r.URL.String()),
		)
		defer span.End()

		telemetry.LoggerWithCorr(ctx).Debug("request start", slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.String("component", "http"))

		wrappedWriter := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		mux.ServeHTTP(wrappedWriter, r.WithContext(ctx))

		telemetry.SetSpanHTTPStatus(span, wrappedWriter.statusCode)
		if wrappedWriter.statusCode >= 400 {
			code, msg := telemetry.ErrorStatus(fmt.Sprintf("HTTP %d", wrappedWriter.statusCode))
			span.SetStatus(code, msg)
		}
	})
	return withCORSConfig(handler, corsCfg)
}

// statusRecorder wraps ResponseWriter to capture status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it
func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements http.Hijacker so the WebSocket upgrade works through the
// middleware chain.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

// Start runs the HTTP server and shuts down gracefully on context cancellation.
func Start(ctx context.Context, handlers *Handlers, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     NewMux(ctx, handlers),
		ReadTimeout: 5 * time.Second,
		// No WriteTimeout: the SSE/WebSocket push streams are long-lived.
		IdleTimeout: 60 * time.Second,
	}

	// Shutdown goroutine
	go func() {
		<-ctx.Done()
		// Use WithoutCancel to inherit context values but allow shutdown to complete
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown error", slog.Any("err", err))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("http server error", slog.Any("err", err))
		return err
	}
	return nil
}

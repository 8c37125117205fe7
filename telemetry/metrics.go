// Package telemetry provides Prometheus metrics and correlation-id aware
// logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Byline pipeline
	BylineRequests      prometheus.Counter
	BylineServed        prometheus.Counter
	BylineEmpty         prometheus.Counter
	BylineFetchFailures prometheus.Counter
	BylineBadInput      prometheus.Counter
	BylineCacheHits     prometheus.Counter
	BylineDuration      prometheus.Observer

	// Chat relay
	RelaySessionsActive prometheus.Gauge
	RelayReconnects     prometheus.Counter
	RelayMessages       prometheus.Counter
	RelayDropped        prometheus.Counter
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		BylineRequests = promauto.NewCounter(prometheus.CounterOpts{Name: "byline_requests_total", Help: "Byline requests received"})
		BylineServed = promauto.NewCounter(prometheus.CounterOpts{Name: "byline_served_total", Help: "Bylines served with content"})
		BylineEmpty = promauto.NewCounter(prometheus.CounterOpts{Name: "byline_empty_total", Help: "Requests where extraction produced no byline"})
		BylineFetchFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "byline_fetch_failures_total", Help: "Mirror fetch failures (timeout, network, status)"})
		BylineBadInput = promauto.NewCounter(prometheus.CounterOpts{Name: "byline_bad_input_total", Help: "Requests rejected before fetch (missing or unsupported URL)"})
		BylineCacheHits = promauto.NewCounter(prometheus.CounterOpts{Name: "byline_cache_hits_total", Help: "Bylines served from the cache"})
		BylineDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "byline_pipeline_duration_seconds", Help: "Extraction pipeline duration seconds", Buckets: prometheus.DefBuckets})

		RelaySessionsActive = promauto.NewGauge(prometheus.GaugeOpts{Name: "relay_sessions_active", Help: "Currently connected relay sessions"})
		RelayReconnects = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_reconnects_total", Help: "Upstream reconnect attempts scheduled"})
		RelayMessages = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_messages_total", Help: "Chat messages forwarded to clients"})
		RelayDropped = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_dropped_total", Help: "Events dropped because a client queue was full"})
	})
}

// TimeFunc measures the duration of fn and records in observer if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------

type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding correlation id (if absent) and the id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	v := ctx.Value(corrKey)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}

package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/onnwee/byline-relay/byline"
	"github.com/onnwee/byline-relay/bylinecache"
	"github.com/onnwee/byline-relay/mirror"
	"github.com/onnwee/byline-relay/relay"
	"github.com/onnwee/byline-relay/telemetry"
)

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	pipeline  *byline.Pipeline
	mirror    *mirror.Client
	cache     *bylinecache.Cache
	db        *sql.DB // optional transcript store; nil when disabled
	connector relay.ConnectorFactory
	startedAt time.Time
}

// NewHandlers creates a Handlers instance with the given dependencies. cache
// and db may be nil (features disabled); connector must produce a fresh
// upstream connector per chat session.
func NewHandlers(pipeline *byline.Pipeline, mirrorClient *mirror.Client, cache *bylinecache.Cache, database *sql.DB, connector relay.ConnectorFactory) *Handlers {
	return &Handlers{
		pipeline:  pipeline,
		mirror:    mirrorClient,
		cache:     cache,
		db:        database,
		connector: connector,
		startedAt: time.Now().UTC(),
	}
}

// allowedByline reports whether the source URL targets a host this service
// scrapes. Extra generic hosts can be allowed via BYLINE_ALLOWED_HOSTS
// (comma-separated host suffixes).
func allowedByline(sourceURL string) bool {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	if byline.ClassifyURL(sourceURL) != byline.PlatformGeneric {
		return true
	}
	host := strings.ToLower(u.Host)
	for _, extra := range strings.Split(os.Getenv("BYLINE_ALLOWED_HOSTS"), ",") {
		extra = strings.ToLower(strings.TrimSpace(extra))
		if extra != "" && (host == extra || strings.HasSuffix(host, "."+extra)) {
			return true
		}
	}
	return false
}

// HandleByline serves GET /byline?url=<profile page>. Responses:
//
//	200 {"byline": "..."}  - sanitized snippet
//	204                    - no byline available this round (not an error)
//	400                    - missing, malformed, or unsupported source URL
//	502                    - mirror fetch failed; nothing was extracted
func (h *Handlers) HandleByline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	telemetry.BylineRequests.Inc()

	sourceURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if sourceURL == "" || !allowedByline(sourceURL) {
		telemetry.BylineBadInput.Inc()
		http.Error(w, "missing or unsupported url", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	canonical := byline.CanonicalURL(sourceURL)

	if cached, ok := h.cache.Get(ctx, canonical); ok {
		writeByline(w, cached)
		return
	}

	raw, err := h.mirror.FetchMarkdown(ctx, canonical)
	if err != nil {
		telemetry.BylineFetchFailures.Inc()
		telemetry.LoggerWithCorr(ctx).Warn("mirror fetch failed",
			slog.String("url", canonical), slog.Any("err", err))
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}

	var result string
	telemetry.TimeFunc(telemetry.BylineDuration, func() {
		result = h.pipeline.GetByline(canonical, raw)
	})

	if result == "" {
		telemetry.BylineEmpty.Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	telemetry.BylineServed.Inc()
	h.cache.Set(ctx, canonical, result)
	writeByline(w, result)
}

func writeByline(w http.ResponseWriter, b string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"byline": b})
}

// HandleStatus reports service uptime and which optional features are
// enabled.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"byline_max_len": h.pipeline.MaxLen(),
		"cache_enabled":  h.cache != nil,
		"db_enabled":     h.db != nil,
	})
}

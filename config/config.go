// Package config loads environment variables and provides a typed Config used across the service.
// It applies sensible defaults so the binary can run locally with minimal setup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP
	HTTPAddr string

	// Byline pipeline
	// BylineMaxLen is the display clamp; 100 by default, 200 is the other
	// supported deployment mode.
	BylineMaxLen int

	// Markdown mirror
	MirrorBaseURL      string
	MirrorFetchTimeout time.Duration

	// Byline cache (optional; empty RedisAddr disables it)
	RedisAddr      string
	BylineCacheTTL time.Duration

	// Transcript store (optional; empty DBDsn disables it)
	DBDsn string
}

// Load reads environment variables and applies defaults. Missing optional
// variables disable features (Redis cache, Postgres transcripts).
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.BylineMaxLen = 100
	if v := os.Getenv("BYLINE_MAX_LEN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid BYLINE_MAX_LEN: %q", v)
		}
		cfg.BylineMaxLen = n
	}

	cfg.MirrorBaseURL = os.Getenv("MIRROR_BASE_URL")

	cfg.MirrorFetchTimeout = 12 * time.Second
	if v := os.Getenv("MIRROR_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid MIRROR_FETCH_TIMEOUT: %q", v)
		}
		cfg.MirrorFetchTimeout = d
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.BylineCacheTTL = 30 * time.Minute
	if v := os.Getenv("BYLINE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid BYLINE_CACHE_TTL: %q", v)
		}
		cfg.BylineCacheTTL = d
	}

	cfg.DBDsn = os.Getenv("DB_DSN")

	return cfg, nil
}

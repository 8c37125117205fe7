package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_ADDR", "BYLINE_MAX_LEN", "MIRROR_BASE_URL", "MIRROR_FETCH_TIMEOUT",
		"REDIS_ADDR", "BYLINE_CACHE_TTL", "DB_DSN",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.BylineMaxLen != 100 {
		t.Errorf("BylineMaxLen = %d, want 100", cfg.BylineMaxLen)
	}
	if cfg.MirrorFetchTimeout != 12*time.Second {
		t.Errorf("MirrorFetchTimeout = %v, want 12s", cfg.MirrorFetchTimeout)
	}
	if cfg.BylineCacheTTL != 30*time.Minute {
		t.Errorf("BylineCacheTTL = %v, want 30m", cfg.BylineCacheTTL)
	}
	if cfg.RedisAddr != "" || cfg.DBDsn != "" {
		t.Errorf("optional services should default to disabled: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("BYLINE_MAX_LEN", "200")
	t.Setenv("MIRROR_BASE_URL", "https://mirror.example/https://")
	t.Setenv("MIRROR_FETCH_TIMEOUT", "5s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BYLINE_CACHE_TTL", "10m")
	t.Setenv("DB_DSN", "postgres://u:p@localhost/relay")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.BylineMaxLen != 200 {
		t.Errorf("BylineMaxLen = %d, want 200", cfg.BylineMaxLen)
	}
	if cfg.MirrorBaseURL != "https://mirror.example/https://" {
		t.Errorf("MirrorBaseURL = %q", cfg.MirrorBaseURL)
	}
	if cfg.MirrorFetchTimeout != 5*time.Second {
		t.Errorf("MirrorFetchTimeout = %v, want 5s", cfg.MirrorFetchTimeout)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.BylineCacheTTL != 10*time.Minute {
		t.Errorf("BylineCacheTTL = %v, want 10m", cfg.BylineCacheTTL)
	}
	if cfg.DBDsn != "postgres://u:p@localhost/relay" {
		t.Errorf("DBDsn = %q", cfg.DBDsn)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric max len", "BYLINE_MAX_LEN", "abc"},
		{"zero max len", "BYLINE_MAX_LEN", "0"},
		{"negative max len", "BYLINE_MAX_LEN", "-10"},
		{"bad fetch timeout", "MIRROR_FETCH_TIMEOUT", "soon"},
		{"negative fetch timeout", "MIRROR_FETCH_TIMEOUT", "-3s"},
		{"bad cache ttl", "BYLINE_CACHE_TTL", "forever"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q succeeded, want error", tt.key, tt.value)
			}
		})
	}
}

package server

import (
	"encoding/json"
	"net/http"
)

// HandleHealthz responds to liveness probe requests. The byline pipeline is
// pure and has no backing state, so liveness is simply "the process serves".
func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleReadyz responds to readiness probe requests, checking the optional
// backing services that are actually configured.
func (h *Handlers) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"cache", func() error { return h.cache.Ping(r.Context()) }},
		{"database", func() error {
			if h.db == nil {
				return nil
			}
			return h.db.PingContext(r.Context())
		}},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":       "not_ready",
				"failed_check": check.name,
				"error":        err.Error(),
			})
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/joestump/joe-bookmarks/internal/build"
	"github.com/joestump/joe-bookmarks/internal/logger"
	"github.com/joestump/joe-bookmarks/internal/metrics"
)

const probeTimeout = 2 * time.Second

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	Branch        string  `json:"branch,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
}

type readyzResponse struct {
	Ready bool `json:"ready"`
}

func hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello, bookmarks."))
}

func healthz(start time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(healthzResponse{
			Status:        "ok",
			UptimeSeconds: time.Since(start).Seconds(),
			Version:       build.Version,
			Commit:        build.Commit,
			Branch:        build.Branch,
			GoVersion:     runtime.Version(),
		})
	}
}

// readyz reports 503 while the database is unreachable.
func readyz(p Probe, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		status := http.StatusOK
		if err := p.Ping(ctx); err != nil {
			log.Warn("readiness check failed", logger.Error(err))
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(readyzResponse{Ready: status == http.StatusOK})
	}
}

// metricsHandler samples the bookmark count into its gauge before each scrape.
func metricsHandler(p Probe, log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		n, err := p.Count(ctx)
		cancel()
		if err != nil {
			log.Warn("count bookmarks for metrics", logger.Error(err))
		} else {
			metrics.BookmarksTotal.Set(float64(n))
		}
		next.ServeHTTP(w, r)
	})
}

// Package api provides the HTTP server for Momentum.
// It exposes the gamification state, achievement and reward operations,
// and the sync drain trigger as a small JSON API.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momentum-labs/momentum/internal/app/gamify"
	"github.com/momentum-labs/momentum/internal/app/syncer"
	"github.com/momentum-labs/momentum/internal/domain"
	"github.com/momentum-labs/momentum/internal/health"
)

// Server is the Momentum HTTP API server.
type Server struct {
	engine         *gamify.Engine
	sync           *syncer.Coordinator
	queue          domain.MutationQueue
	health         *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(engine *gamify.Engine, sync *syncer.Coordinator, queue domain.MutationQueue) *Server {
	return &Server{engine: engine, sync: sync, queue: queue}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth attaches the health checker for the /health endpoint.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if s.health == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}
		status := http.StatusOK
		if !s.health.IsHealthy() {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]interface{}{
			"healthy": s.health.IsHealthy(),
			"checks":  s.health.Statuses(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/state", s.handleState)
		r.Get("/achievements", s.handleAchievements)
		r.Post("/achievements/{id}/unlock", s.handleUnlockAchievement)
		r.Get("/rewards", s.handleRewards)
		r.Post("/rewards/{id}/claim", s.handleClaimReward)
		r.Post("/tasks/complete", s.handleTaskComplete)
		r.Post("/timer/session", s.handleTimerSession)
		r.Post("/sync/queue", s.handleSyncEnqueue)
		r.Get("/sync/pending", s.handleSyncPending)
		r.Post("/sync/drain", s.handleSyncDrain)
		r.Get("/sync/stats", s.handleSyncStats)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": msg,
	})
}

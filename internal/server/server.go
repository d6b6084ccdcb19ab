// Package server is the localhost facade between the game core and its
// rendering layer: read-only state snapshots out, discrete player intents
// in. It never holds game state of its own.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cosmogen/cosmogenesis/internal/ledger"
	"github.com/cosmogen/cosmogenesis/internal/logger"
	"github.com/cosmogen/cosmogenesis/internal/metrics"
	"github.com/cosmogen/cosmogenesis/internal/mission"
	"github.com/cosmogen/cosmogenesis/internal/scheduler"
	"github.com/cosmogen/cosmogenesis/internal/shop"
	"github.com/cosmogen/cosmogenesis/internal/universe"
)

// Version is stamped at build time.
var Version = "dev"

// Server serves the game facade over localhost HTTP.
type Server struct {
	httpServer *http.Server
	ledger     ledger.Service
	shop       shop.Service
	missions   mission.Service
	universe   universe.Service
	scheduler  *scheduler.Scheduler
	clock      clockwork.Clock
	ring       *logger.Ring
	resetAll   func(ctx context.Context)
	validate   *validator.Validate
}

// New builds the facade router over the game services. resetAll performs a
// full data clear for the recovery flow.
func New(port int, led ledger.Service, shopSvc shop.Service, missionSvc mission.Service, universeSvc universe.Service, sched *scheduler.Scheduler, clock clockwork.Clock, ring *logger.Ring, resetAll func(ctx context.Context)) *Server {
	s := &Server{
		ledger:    led,
		shop:      shopSvc,
		missions:  missionSvc,
		universe:  universeSvc,
		scheduler: sched,
		clock:     clock,
		ring:      ring,
		resetAll:  resetAll,
		validate:  validator.New(),
	}

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/version", s.handleVersion)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/player", s.handleGetPlayer)
		r.Get("/summary", s.handleGetSummary)

		r.Route("/shop", func(r chi.Router) {
			r.Get("/", s.handleGetShop)
			r.Post("/purchase", s.handlePurchaseListing)
		})

		r.Route("/missions", func(r chi.Router) {
			r.Get("/", s.handleGetMissions)
			r.Post("/{id}/purchase", s.handlePurchaseMission)
		})

		r.Route("/boosters", func(r chi.Router) {
			r.Get("/", s.handleGetBoosters)
			r.Post("/{id}/purchase", s.handlePurchaseBooster)
		})

		r.Route("/universe", func(r chi.Router) {
			r.Get("/", s.handleGetUniverse)
			r.Post("/sun", s.handlePlaceSun)
			r.Post("/planets", s.handlePlacePlanet)
			r.Delete("/planets/{orbit}/{slot}", s.handleRemovePlanet)
			r.Post("/clear", s.handleClearUniverse)
		})

		r.Post("/visibility", s.handleVisibility)
		r.Get("/debug/logs", s.handleDebugLogs)
		r.Post("/recovery/clear", s.handleRecoveryClear)
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	slog.Info("facade listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// loggingMiddleware assigns each request an id and logs its outcome.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		logger.FromContext(ctx).Debug("request handled",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

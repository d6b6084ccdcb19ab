package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cosmogen/cosmogenesis/internal/logger"
)

// NewRecovery builds the degraded facade served when initialization does
// not finish in time: the debug log buffer and a full data clear, so the
// player always has a way out of a broken save instead of a hang.
func NewRecovery(port int, ring *logger.Ring, clearData func(ctx context.Context) error) *Server {
	s := &Server{ring: ring}

	r := chi.NewRouter()
	r.Use(loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusServiceUnavailable,
			"initialization timed out, clear game data or restart")
	})
	r.Get("/api/v1/debug/logs", s.handleDebugLogs)
	r.Post("/api/v1/recovery/clear", func(w http.ResponseWriter, req *http.Request) {
		if err := clearData(req.Context()); err != nil {
			logger.FromContext(req.Context()).Error("recovery clear failed", "error", err)
			respondError(w, http.StatusInternalServerError, "clearing game data failed")
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "all game data cleared, restart to continue"})
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

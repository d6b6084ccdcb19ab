package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cosmogen/cosmogenesis/internal/catalog"
	"github.com/cosmogen/cosmogenesis/internal/config"
	"github.com/cosmogen/cosmogenesis/internal/ledger"
	"github.com/cosmogen/cosmogenesis/internal/logger"
	"github.com/cosmogen/cosmogenesis/internal/mission"
	"github.com/cosmogen/cosmogenesis/internal/scheduler"
	"github.com/cosmogen/cosmogenesis/internal/server"
	"github.com/cosmogen/cosmogenesis/internal/shop"
	"github.com/cosmogen/cosmogenesis/internal/storage"
	"github.com/cosmogen/cosmogenesis/internal/universe"
	"github.com/cosmogen/cosmogenesis/internal/worker"
)

// Scheduler task names.
const (
	taskIncome      = "income"
	taskShopRefresh = "shop-refresh"
	taskDrift       = "drift"
	taskAutosave    = "autosave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	ring := logger.NewRing()
	logger.Setup(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "cosmogenesis",
		Version:     server.Version,
	}, ring)

	if err := run(cfg, ring); err != nil {
		slog.Error("game engine failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, ring *logger.Ring) error {
	// Initialization is bounded; on timeout the player gets a recovery
	// path instead of a silent hang.
	initCtx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout)
	defer cancel()

	store, err := openStore(initCtx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	clock := clockwork.NewRealClock()
	cat := catalog.Load(cfg.DataDir)

	led := ledger.Load(initCtx, store, cat, clock)
	shopSvc := shop.New(initCtx, store, cat, led, clock, newRand())
	universeSvc := universe.Load(initCtx, store, led, clock, cfg.BaseIncomeRate)
	missionSvc := mission.New(led, universeSvc)

	if cfg.BoosterIncomeEnabled {
		universeSvc.SetIncomeBoost(func(now time.Time) float64 {
			return missionSvc.ActiveEffects(now, led.ActiveBoosters()).ChronosBoost
		})
	}

	if err := initCtx.Err(); err != nil {
		slog.Error("initialization timed out, serving recovery facade")
		return serveRecovery(cfg, ring, store)
	}

	pool := worker.NewPool(1, 64)
	pool.Start()
	defer pool.Stop()

	sched := scheduler.New(pool, clock)
	defer sched.Stop()
	sched.Schedule(taskIncome, cfg.IncomeTick(), worker.JobFunc(func(ctx context.Context) error {
		universeSvc.Accrue(ctx)
		return nil
	}))
	sched.Schedule(taskShopRefresh, time.Minute, worker.JobFunc(func(ctx context.Context) error {
		shopSvc.Tick(ctx)
		return nil
	}))
	sched.Schedule(taskDrift, 50*time.Millisecond, worker.JobFunc(func(ctx context.Context) error {
		shopSvc.Drift(ctx)
		return nil
	}))
	sched.Schedule(taskAutosave, cfg.AutosaveTick(), worker.JobFunc(func(ctx context.Context) error {
		led.SetSystemStats(ctx, universeSvc.Snapshot().TotalPower, len(universeSvc.Snapshot().Planets))
		return nil
	}))

	resetAll := func(ctx context.Context) {
		led.Reset(ctx)
		universeSvc.Clear(ctx)
		shopSvc.RefreshPlanets(ctx)
		shopSvc.RefreshSun(ctx)
	}
	srv := server.New(cfg.Port, led, shopSvc, missionSvc, universeSvc, sched, clock, ring, resetAll)
	return serve(srv)
}

// serveRecovery runs the degraded facade after an initialization timeout:
// no game loops, just log access and the full data clear.
func serveRecovery(cfg *config.Config, ring *logger.Ring, store storage.Store) error {
	clearData := func(ctx context.Context) error {
		keys := []string{storage.KeyPlayerData, storage.KeyShopUniverse, storage.KeyUniverse}
		for _, key := range keys {
			if err := store.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	}
	return serve(server.NewRecovery(cfg.Port, ring, clearData))
}

// serve runs the facade until the listener fails or a shutdown signal
// arrives, then drains in-flight requests.
func serve(srv *server.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// newRand builds the shop's roll source.
//
//nolint:gosec // G404: game mechanics, not cryptography
func newRand() func() float64 {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Float64
}

// openStore selects the sqlite save file, or the in-memory store when no
// path is configured.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.SavePath == "" {
		slog.Warn("no save path configured, progress will not survive restarts")
		return storage.NewMemoryStore(), nil
	}
	return storage.OpenSQLite(cfg.SavePath)
}

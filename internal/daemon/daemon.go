package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momentum-labs/momentum/internal/api"
	"github.com/momentum-labs/momentum/internal/app/gamify"
	"github.com/momentum-labs/momentum/internal/app/syncer"
	"github.com/momentum-labs/momentum/internal/health"
	_ "github.com/momentum-labs/momentum/internal/infra/metrics" // Register Prometheus metrics
	"github.com/momentum-labs/momentum/internal/infra/sqlite"
	"github.com/momentum-labs/momentum/internal/infra/transport"
)

// Daemon is the Momentum runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Clock  *gamify.SystemClock
	Engine *gamify.Engine
	Queue  *sqlite.Queue
	Sync   *syncer.Coordinator
	Server *api.Server
	Health *health.Checker

	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clock := gamify.NewSystemClock(loc)

	dataDir := cfg.Data.Dir
	if dataDir == "" {
		dataDir = momentumHome()
	}
	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	engineCfg := gamify.DefaultEngineConfig()
	if cfg.Gamify.EarlyCutoffHour > 0 {
		engineCfg.EarlyCutoffHour = cfg.Gamify.EarlyCutoffHour
	}
	if cfg.Gamify.DateWindowDays > 0 {
		engineCfg.DateWindowDays = cfg.Gamify.DateWindowDays
	}

	engine, err := gamify.NewEngine(sqlite.NewStateStore(db, clock), clock, engineCfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init engine: %w", err)
	}

	queue := sqlite.NewQueue(db, clock)
	coord := syncer.NewCoordinator(queue, transport.New(cfg.SyncTimeout()), syncer.Config{
		MaxRetries: cfg.Sync.MaxRetries,
		PurgeAge:   cfg.PurgeAge(),
	})

	checker := health.NewChecker(db, queue, dataDir)

	srv := api.NewServer(engine, coord, queue)
	srv.SetHealth(checker)
	if cfg.API.Metrics {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config: cfg,
		DB:     db,
		Clock:  clock,
		Engine: engine,
		Queue:  queue,
		Sync:   coord,
		Server: srv,
		Health: checker,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.Engine.Save()
		_ = d.DB.Close()
	}()

	fmt.Printf("Momentum serving on http://%s\n", addr)
	if d.Config.API.Metrics {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Engine != nil {
		_ = d.Engine.Save()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}

// cmd/edge/main.go
//
// sitegrove-edge – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load configuration (conf/.env → conf/global.yaml → EDGE_* env,
//     `vault:` references resolved before validation).
//
//  2. Start daily rotating logger (tees to console when running in a
//     TTY) and install it as the process-wide zap logger.
//
//  3. Build the rendered-HTML cache: in-process memory store for a
//     single instance, Redis for a shared fleet.
//
//  4. Build the site directory: hosted REST API or direct SQL.
//
//  5. Optionally open the MaxMind database for request geolocation.
//
//  6. Expose Prometheus /metrics on the same listener, mount the edge
//     router, and serve until SIGINT/SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments
// use a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sitegrove/edge/internal/config"
	"github.com/sitegrove/edge/internal/database"
	"github.com/sitegrove/edge/internal/directory"
	"github.com/sitegrove/edge/internal/edge"
	"github.com/sitegrove/edge/internal/htmlcache"
	"github.com/sitegrove/edge/internal/logger"
	"github.com/sitegrove/edge/internal/requestinfo"
	"github.com/sitegrove/edge/internal/server"
)

// shutdownGrace bounds how long in-flight requests may run after a
// termination signal.
const shutdownGrace = 10 * time.Second

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx := context.Background()

	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Logger ──────────────────────────────────────────────────────
	//
	zlog, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Infow("edge starting",
		"platform", cfg.Platform.Domain,
		"cache_backend", cfg.Cache.Backend,
		"directory_backend", cfg.Directory.Backend)

	//
	// ── 3.  Rendered-HTML cache ─────────────────────────────────────────
	//
	var cache htmlcache.Store
	switch cfg.Cache.Backend {
	case "redis":
		rc, err := htmlcache.NewRedis(ctx, htmlcache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			zlog.Fatalw("connect redis", "addr", cfg.Cache.RedisAddr, "error", err)
		}
		defer rc.Close()
		cache = rc
	default:
		mc := htmlcache.NewMemory(cfg.Cache.MaxEntries)
		defer mc.Close()
		cache = mc
	}

	//
	// ── 4.  Site directory ──────────────────────────────────────────────
	//
	var dir directory.Lookup
	switch cfg.Directory.Backend {
	case "sql":
		db, err := database.Open(cfg.Directory.DSN)
		if err != nil {
			zlog.Fatalw("connect directory DB", "error", err)
		}
		defer db.Close()

		// Log active-site count as an early sanity check.
		var active int
		_ = db.Get(&active, `
		    SELECT COUNT(*) FROM site
		    WHERE suspended_at IS NULL AND deleted_at IS NULL`)
		zlog.Infow("directory DB online", "active_sites", active)

		dir = directory.NewSQL(db)
	default:
		dir = directory.NewREST(cfg.Directory.BaseURL, cfg.Directory.APIKey)
	}

	//
	// ── 5.  Optional GeoIP enrichment ───────────────────────────────────
	//
	if cfg.GeoIP.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
			zlog.Warnw("geoip disabled", "path", cfg.GeoIP.DBPath, "error", err)
		}
	}

	//
	// ── 6.  Router and server ───────────────────────────────────────────
	//
	e := edge.New(cache, dir,
		cfg.Platform.Domain,
		cfg.Platform.MainAppURL,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		cfg.Purge.Secret)

	root := chi.NewRouter()
	root.Handle("/metrics", promhttp.Handler())
	root.Mount("/", e.Router())

	srv := server.New(cfg.HTTP.ListenAddr, root)

	errCh := make(chan error, 1)
	go func() {
		zlog.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatalw("http server", "error", err)
		}
	case sig := <-sigCh:
		zlog.Infow("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Warnw("shutdown incomplete", "error", err)
		}
	}
}

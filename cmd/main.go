package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/okian/beacon/internal/adapters/http/api"
	"github.com/okian/beacon/internal/adapters/procmem"
	"github.com/okian/beacon/internal/adapters/segment"
	app "github.com/okian/beacon/internal/app"
	"github.com/okian/beacon/internal/config"
	"github.com/okian/beacon/internal/domain/analytics"
	"github.com/okian/beacon/internal/tracking"
	"github.com/okian/beacon/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	trackers := buildTrackers(ctx, cfg, log)
	defer func() {
		if err := trackers.Close(); err != nil {
			log.Error(ctx, "flush analytics client", logger.Error(err))
		}
	}()

	var reporter *app.Service
	if cfg.InfraMetricsIntervalMS > 0 {
		reporter = app.New(trackers.Node,
			app.WithInterval(cfg.InfraMetricsInterval()),
			app.WithReportOnStart(true),
			app.WithLogger(log.Named("reporter")),
		)
		if err := reporter.Start(ctx); err != nil {
			log.Error(ctx, "failed to start infra metrics reporter", logger.Error(err))
		} else {
			defer reporter.Stop()
		}
	}

	mux := http.NewServeMux()
	api.NewServer(trackers).Register(ctx, mux)
	srv := newHTTPServer(cfg.Addr, mux)

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}
	log.Info(shutdownCtx, "server stopped")
}

// buildTrackers creates the analytics surfaces from cfg. A client that cannot
// be built degrades to disabled tracking, since analytics must never keep the
// node from running. The write key is trimmed so that a blank key disables
// tracking, matching cfg.TrackingEnabled.
func buildTrackers(ctx context.Context, cfg *config.Config, log logger.Logger) *analytics.Trackers {
	trackers, err := tracking.New(ctx, strings.TrimSpace(cfg.WriteKey), cfg.Active,
		analytics.WithLogger(log.Named("analytics")),
		analytics.WithMemoryReader(procmem.NewReader(log.Named("procmem"))),
		tracking.WithSegment(segment.Config{
			Endpoint:   cfg.Endpoint,
			BatchSize:  cfg.BatchSize,
			Interval:   cfg.FlushInterval(),
			Verbose:    cfg.Verbose,
			AppName:    cfg.AppName,
			AppVersion: version,
			Logger:     log.Named("segment"),
		}),
	)
	if err != nil {
		log.Error(ctx, "analytics disabled: client init failed", logger.Error(err))
		return analytics.NewDisabled()
	}
	return trackers
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

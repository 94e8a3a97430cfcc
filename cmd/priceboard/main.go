package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PriceBoard/internal/api"
	"PriceBoard/internal/collector"
	"PriceBoard/internal/config"
	"PriceBoard/internal/model"
	"PriceBoard/internal/recorder"
	"PriceBoard/internal/scheduler"
	"PriceBoard/pkg/logger"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	err = run(cfg, sigCh)
	if err != nil {
		logger.Error("PriceBoard failed", logger.ErrorField(err))
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run wires and serves until a signal arrives on stop or the listener fails.
// Deferred cleanup always runs before it returns.
func run(cfg *config.Config, stop <-chan os.Signal) error {
	logger.Info("PriceBoard starting", logger.String("environment", cfg.Environment))

	// Init fetchers
	yahoo := collector.NewYahooFetcher(cfg.Proxy, cfg.Upstream.Timeout)
	if len(cfg.Upstream.YahooHosts) > 0 {
		yahoo.Hosts = cfg.Upstream.YahooHosts
	}
	fetchers := map[model.SourceKind]collector.Fetcher{
		model.SourceYahoo:       yahoo,
		model.SourceFrankfurter: collector.NewFrankfurterFetcher(cfg.Upstream.FrankfurterURL, cfg.Proxy, cfg.Upstream.Timeout),
		model.SourceStatic:      collector.NewStaticFetcher(model.Catalog),
	}
	logger.Info("upstreams configured", logger.Strings("yahoo_hosts", yahoo.Hosts))

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", logger.ErrorField(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	col := collector.NewCollector(fetchers, rec, model.Catalog, cfg.Cache.TTL)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Schedule.RunOnStart {
		logger.Info("run_on_start enabled, refreshing now")
		go sched.RunNow()
	}

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           api.NewRouter(api.NewHandler(col, model.Catalog)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Wait for shutdown signal
	var runErr error
	select {
	case <-stop:
		logger.Info("shutdown signal received, stopping")
	case runErr = <-serveErr:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", logger.ErrorField(err))
	}
	logger.Info("PriceBoard stopped")
	return runErr
}

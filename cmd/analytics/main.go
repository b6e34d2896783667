package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maccabipedia/clubstats/internal/app"
	"github.com/maccabipedia/clubstats/internal/config"
	"github.com/maccabipedia/clubstats/internal/observability"
	"github.com/maccabipedia/clubstats/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, logger)
	if err := a.LoadDataset(ctx, nil); err != nil {
		logger.Error("load dataset", "error", err)
		os.Exit(1)
	}

	findings, err := a.ScanDataset(ctx)
	if err != nil {
		logger.Error("scan dataset", "error", err)
		os.Exit(1)
	}
	for _, finding := range findings {
		logger.Warn("data finding", "kind", finding.Kind, "match", finding.Match, "detail", finding.Detail)
	}

	if err := a.ExportRows(ctx); err != nil {
		logger.Error("export rows", "error", err)
		os.Exit(1)
	}

	if cfg.HTTPEnabled {
		serveHTTP(ctx, a, logger)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown tracing", "error", err)
	}
	if err := stopProfiler(); err != nil {
		logger.Error("stop profiler", "error", err)
	}
}

func serveHTTP(ctx context.Context, a *app.App, logger *logging.Logger) {
	srv, err := a.HTTPServer()
	if err != nil {
		logger.Error("build http server", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("http server stopped")
}

// Command leetboard serves the LeetCode progress dashboard backed by a
// Google spreadsheet.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/leetboard/internal/adapters/http/api"
	"github.com/okian/leetboard/internal/adapters/http/site"
	"github.com/okian/leetboard/internal/adapters/http/swagger"
	"github.com/okian/leetboard/internal/adapters/sheets"
	service "github.com/okian/leetboard/internal/app"
	"github.com/okian/leetboard/internal/config"
	"github.com/okian/leetboard/pkg/logger"
	"github.com/okian/leetboard/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString("leetboard: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.SpreadsheetID == "" {
		return fmt.Errorf("%w: spreadsheet_id is required", config.ErrInvalidConfig)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	if cfg.AllowsAnyOrigin() {
		log.Warn(ctx, "CORS allows every origin")
	}

	source, err := sheets.New(ctx, cfg.SpreadsheetID,
		sheets.WithSheetName(cfg.SheetName),
		sheets.WithRange(cfg.SheetRange),
		sheets.WithCredentialsFile(cfg.CredentialsFile),
		sheets.WithCredentialsJSON(cfg.CredentialsJSON),
		sheets.WithLogger(logger.Named("sheets")),
	)
	if err != nil {
		return fmt.Errorf("sheets client: %w", err)
	}

	svc := service.New(source,
		service.WithLogger(logger.Named("service")),
		service.WithCacheTTL(cfg.CacheTTL),
		service.WithRefreshInterval(cfg.Refresh()),
		service.WithFetchTimeout(cfg.FetchTimeout),
		service.WithSheet(cfg.SpreadsheetID, cfg.SheetName),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc, cfg),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("spreadsheet_id", cfg.SpreadsheetID),
			logger.String("sheet", cfg.SheetName),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newHandler registers the API, docs and dashboard routes and wraps them in
// the request id and CORS middleware.
func newHandler(ctx context.Context, deps api.Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	apiServer := api.NewServer(deps,
		api.WithAllowedOrigins(cfg.AllowedOrigins),
		api.WithLogger(logger.Named("http")),
	)
	apiServer.Register(ctx, mux)
	return apiServer.Handler(mux)
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater keeps the snapshot age gauge current between reads.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc, time.Now())
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics updates service-level metrics.
func updateServiceMetrics(svc interface{ GetStats() map[string]any }, now time.Time) {
	stats := svc.GetStats()
	if at, ok := stats["lastFetched"].(time.Time); ok {
		metrics.UpdateSnapshotAge(now.Sub(at).Seconds())
	}
}

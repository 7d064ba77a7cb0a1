package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/JonMunkholm/novareport/internal/config"
	"github.com/JonMunkholm/novareport/internal/core"
	"github.com/JonMunkholm/novareport/internal/logging"
	"github.com/JonMunkholm/novareport/internal/nova"
	"github.com/JonMunkholm/novareport/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists; variables already in the environment win
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"nova_base_url", cfg.Nova.BaseURL,
		"nova_max_concurrent_pages", cfg.Nova.MaxConcurrentPages,
		"student_slots", cfg.Report.StudentSlots,
		"report_max_concurrent", cfg.Report.MaxConcurrent,
	)
	slog.Debug("effective configuration", "config", cfg.String())

	if !cfg.Nova.Configured() {
		slog.Warn("Nova credentials are not configured; report requests will fail until NOVA_TOKEN and NOVA_TENANT are set")
	}

	client := nova.NewClient(cfg.Nova)
	limiter := core.NewReportLimiter(cfg.Report.MaxConcurrent, cfg.Report.MaxWait)
	service := core.NewService(client, core.WithLimiter(limiter))
	server := web.NewServer(service, cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Let reports in flight finish (with timeout)
		if status := limiter.Status(); status.Active > 0 {
			slog.Info("waiting for reports to complete", "active", status.Active)
			if err := service.Drain(shutdownCtx); err != nil {
				slog.Warn("reports did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "url", "http://localhost:"+strconv.Itoa(cfg.Server.Port))
	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}

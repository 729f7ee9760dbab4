package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/triply/triply-go/internal/config"
	"github.com/triply/triply-go/internal/logger"
	"github.com/triply/triply-go/internal/stub"
	"github.com/triply/triply-go/internal/telemetry"
)

func main() {
	port := flag.String("port", "8080", "Port to listen on")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Best effort; a missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	debugMode := cfg.Debug || *debugFlag

	zapLogger, err := logger.New(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync(zapLogger) }()

	zapLogger.Info("starting_stub_server",
		zap.String("port", *port),
		zap.String("frontend_url", cfg.AppBase),
		zap.Bool("debug_mode", debugMode),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			shutdown, err := telemetry.Init(context.Background(), "triply-stub", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_tracer", zap.Error(err))
			} else {
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	server := stub.New(zapLogger, cfg.AppBase)
	handler, err := server.Handler()
	if err != nil {
		zapLogger.Fatal("failed_to_build_handler", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + *port,
		Handler:        handler,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server_failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting_down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("forced_shutdown", zap.Error(err))
	}
	zapLogger.Info("server_stopped")
}

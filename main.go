package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmocast/internal/config"
	"cosmocast/internal/logger"
	"cosmocast/internal/observability"
	"cosmocast/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Reconfigure the global logger from the loaded config
	log := logger.GetGlobalLogger()
	if level := logger.ParseLogLevel(cfg.LogLevel); level != -1 {
		log.SetLevel(level)
	}
	if format := logger.ParseLogFormat(cfg.LogFormat); format != -1 {
		log.SetFormat(format)
	}

	logger.Infof("Starting Cosmic Weather Service %s on port %s", config.GetVersion(), cfg.Port)
	logger.Infof("Environment: %s, cache TTL: %s", cfg.Environment, cfg.CacheTTL)

	srv := server.NewServer(cfg, nil, observability.NewMetrics())

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}

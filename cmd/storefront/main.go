package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dukastore/internal/application/services"
	"dukastore/internal/config"
	"dukastore/internal/infrastructure/daraja"
	"dukastore/internal/infrastructure/woo"
	"dukastore/internal/interfaces/rest/handlers"
	"dukastore/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting storefront service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	gateway := daraja.NewClient(cfg.Mpesa)
	backend := woo.NewRetryClient(woo.NewClient(cfg.Woo), cfg.Retry)

	initiator := services.NewInitiator(gateway, logger)
	poller := services.NewPoller(gateway, cfg.Poller.Interval, cfg.Poller.MaxWait, logger)
	committer := services.NewCommitter(backend, logger)
	saga := services.NewCheckoutSaga(initiator, poller, committer, logger)
	catalog := services.NewCatalog(backend, logger)

	mux := http.NewServeMux()
	handlers.NewHandler(initiator, poller, committer, saga, catalog, logger).Register(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.WriteTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

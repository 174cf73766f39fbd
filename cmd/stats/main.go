// Package main runs the hit statistics service.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventboard/config"
	httpdelivery "eventboard/internal/delivery/http"
	"eventboard/internal/delivery/http/controllers"
	"eventboard/internal/delivery/http/middleware"
	"eventboard/internal/repository/postgres"
	"eventboard/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment).With("service", "stats")

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.StatsDBUrl)
	if err != nil {
		logger.Error("database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, postgres.SchemaStats); err != nil {
		logger.Error("migrate", "err", err)
		os.Exit(1)
	}

	svc := services.NewStatsService(postgres.NewHitRepository(db), cfg.RequestTimeout)
	router := httpdelivery.NewStatsRouter(controllers.NewStatsController(logger, svc))

	srv := &http.Server{
		Addr:              ":" + cfg.StatsPort,
		Handler:           middleware.Chain(router, middleware.Logging(logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("stats server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

// Package main runs the eventboard API server.
//
//	@title						eventboard API
//	@version					1.0
//	@description				Event publishing: moderation, participation requests and public search.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
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
	_ "eventboard/docs"
	"eventboard/internal/adapters/auth"
	"eventboard/internal/adapters/email"
	"eventboard/internal/adapters/stats"
	httpdelivery "eventboard/internal/delivery/http"
	"eventboard/internal/delivery/http/controllers"
	"eventboard/internal/delivery/http/middleware"
	"eventboard/internal/domain"
	"eventboard/internal/repository/postgres"
	"eventboard/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		logger.Error("database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, postgres.SchemaMain); err != nil {
		logger.Error("migrate", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	requestRepo := postgres.NewRequestRepository(db)
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	compilationRepo := postgres.NewCompilationRepository(db)
	txRunner := postgres.NewTxRunner(db)

	views := stats.NewHTTPClient(cfg.StatsURL, &http.Client{Timeout: 3 * time.Second})
	if cfg.RedisAddr != "" {
		rdb, err := stats.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("view cache disabled", "err", err)
		} else {
			defer rdb.Close()
			views = stats.NewCachedViewCounter(views, rdb, cfg.ViewCacheTTL, logger)
		}
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.AWSRegion,
			AccessKeyID:     cfg.Mailer.AWSAccessKeyID,
			SecretAccessKey: cfg.Mailer.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("mailer", "err", err)
		os.Exit(1)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		logger.Error("email templates", "err", err)
		os.Exit(1)
	}
	notifier := services.NewModerationNotifier(mailer, renderer, logger)

	timeout := cfg.RequestTimeout
	eventService := services.NewEventService(eventRepo, userRepo, categoryRepo, txRunner, notifier, logger, timeout)
	publicService := services.NewPublicEventService(eventRepo, views, cfg.AppName, logger, timeout)
	requestService := services.NewRequestService(requestRepo, eventRepo, userRepo, txRunner, timeout)
	userService := services.NewUserService(userRepo, timeout)
	categoryService := services.NewCategoryService(categoryRepo, eventRepo, timeout)
	compilationService := services.NewCompilationService(compilationRepo, eventRepo, txRunner, timeout)

	var adminGuard func(http.Handler) http.Handler
	if cfg.AdminJWTSecret != "" {
		adminGuard = middleware.RequireRole(auth.NewJWTVerifier(cfg.AdminJWTSecret), domain.RoleAdmin, logger)
	} else {
		logger.Warn("ADMIN_JWT_SECRET not set, admin routes are unauthenticated")
	}

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Events:       controllers.NewEventController(logger, eventService),
		PublicEvents: controllers.NewPublicEventController(logger, publicService),
		Requests:     controllers.NewRequestController(logger, requestService),
		Users:        controllers.NewUserController(logger, userService),
		Categories:   controllers.NewCategoryController(logger, categoryService),
		Compilations: controllers.NewCompilationController(logger, compilationService),
	}, adminGuard)
	handler := middleware.Chain(router, middleware.Logging(logger), middleware.CORS(cfg.AllowedOrigins))

	serve(logger, ":"+cfg.Port, handler)
}

// serve runs srv until SIGINT or SIGTERM, then drains in-flight requests.
func serve(logger *slog.Logger, addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

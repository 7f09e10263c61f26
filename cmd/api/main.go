package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/callback-service/internal/api/http"
	"github.com/spec-kit/callback-service/internal/api/http/handlers"
	"github.com/spec-kit/callback-service/internal/auth"
	"github.com/spec-kit/callback-service/internal/config"
	"github.com/spec-kit/callback-service/internal/events"
	"github.com/spec-kit/callback-service/internal/observability"
	"github.com/spec-kit/callback-service/internal/persistence"
	"github.com/spec-kit/callback-service/internal/repository"
	"github.com/spec-kit/callback-service/internal/service"
	"github.com/spec-kit/callback-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	agentRepo := repository.NewAgentRepository(pool)
	callbackRepo := repository.NewCallbackRepository(pool)
	checkRepo := repository.NewCheckRepository(pool)

	sessionStore := auth.NewRedisSessionStore(redis.Client)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService, err := service.NewAuthService(*cfg, service.AuthDependencies{
		AgentRepo:    agentRepo,
		SessionStore: sessionStore,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	callbackService := service.NewCallbackService(callbackRepo, dispatcher)
	checkService := service.NewCheckService(checkRepo, dispatcher)
	analyticsService := service.NewAnalyticsService(callbackRepo, checkRepo)
	rosterService := service.NewRosterService(agentRepo, dispatcher, cfg.Auth.BcryptCost)
	reminderService := service.NewReminderService(dispatcher, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), sessionStore, agentRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Callbacks:      handlers.NewCallbacksHandler(callbackService, checkService, analyticsService),
		Admin:          handlers.NewAdminHandler(callbackService, checkService, analyticsService, rosterService),
		AuthMiddleware: authMiddleware,
	})

	worker.StartReminderWorker(ctx, reminderService, analyticsService, cfg.Reminder.SweepInterval(), logger)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

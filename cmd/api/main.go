package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/alirazi1992/Update3-Ticketing/internal/api/http"
	"github.com/alirazi1992/Update3-Ticketing/internal/api/http/handlers"
	"github.com/alirazi1992/Update3-Ticketing/internal/auth"
	"github.com/alirazi1992/Update3-Ticketing/internal/config"
	"github.com/alirazi1992/Update3-Ticketing/internal/events"
	"github.com/alirazi1992/Update3-Ticketing/internal/observability"
	"github.com/alirazi1992/Update3-Ticketing/internal/persistence"
	"github.com/alirazi1992/Update3-Ticketing/internal/repository"
	"github.com/alirazi1992/Update3-Ticketing/internal/service"
	"github.com/alirazi1992/Update3-Ticketing/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewTicketMessageRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	categoryCache := persistence.NewCategoryCache(redis, cfg.Redis.CategoryTTL(), logger)

	userService := service.NewUserService(cfg.Auth, userRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	categoryService := service.NewCategoryService(categoryRepo, categoryCache)
	notificationService := service.NewNotificationService(notificationRepo, logger)

	worker.StartNotificationWorker(dispatcher, notificationService, logger)

	if cfg.Seed.Enabled {
		if err := persistence.Seed(ctx, persistence.SeedDependencies{
			Users:         userRepo,
			Categories:    categoryRepo,
			Tickets:       ticketRepo,
			Messages:      messageRepo,
			Notifications: notificationRepo,
			BcryptCost:    cfg.Auth.BcryptCost,
			Logger:        logger,
		}); err != nil {
			logger.Fatal("failed to seed baseline data", zap.Error(err))
		}
	}

	authMiddleware := auth.NewAuthMiddleware(userService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(userService),
		Users:          handlers.NewUsersHandler(userService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		AuthMiddleware: authMiddleware,
	})

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

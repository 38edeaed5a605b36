package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/donation-service/internal/api/http"
	"github.com/spec-kit/donation-service/internal/api/http/handlers"
	"github.com/spec-kit/donation-service/internal/auth"
	"github.com/spec-kit/donation-service/internal/config"
	"github.com/spec-kit/donation-service/internal/events"
	"github.com/spec-kit/donation-service/internal/observability"
	"github.com/spec-kit/donation-service/internal/persistence"
	"github.com/spec-kit/donation-service/internal/repository"
	"github.com/spec-kit/donation-service/internal/service"
	"github.com/spec-kit/donation-service/internal/worker"
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
	pixKeyRepo := repository.NewPixKeyRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)
	causeRepo := repository.NewCauseRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	resolver := auth.NewIdentityResolver(userRepo)
	gate := auth.NewMiddleware(authService.TokenManager(), resolver)

	donorService := service.NewDonorService(service.DonorDependencies{
		UserRepo:     userRepo,
		FavoriteRepo: favoriteRepo,
		CauseRepo:    causeRepo,
		ProductRepo:  productRepo,
		Cache:        redis,
		CacheTTL:     cfg.Cache.ReceiversTTL(),
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	receiverService := service.NewReceiverService(pixKeyRepo, causeRepo, productRepo, dispatcher)
	accountService := service.NewAccountService(userRepo, dispatcher, donorService.InvalidateReceiversCache)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService),
		Donor:    handlers.NewDonorHandler(donorService, accountService),
		Receiver: handlers.NewReceiverHandler(receiverService, accountService),
		Gate:     gate,
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

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/restaurant-service/internal/api/http"
	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/observability"
	"github.com/spec-kit/restaurant-service/internal/persistence"
	"github.com/spec-kit/restaurant-service/internal/realtime"
	"github.com/spec-kit/restaurant-service/internal/repository"
	"github.com/spec-kit/restaurant-service/internal/service"
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
	accountRepo := repository.NewAccountRepository(pool)
	guestRepo := repository.NewGuestRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	dishRepo := repository.NewDishRepository(pool)
	tableRepo := repository.NewTableRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	var tokenStore auth.RefreshTokenStore
	if redis != nil && redis.Client != nil {
		tokenStore = auth.NewRedisRefreshTokenStore(redis.Client)
	} else {
		tokenStore = auth.NewMemoryRefreshTokenStore()
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: accountRepo,
		GuestRepo:   guestRepo,
		TableRepo:   tableRepo,
		TokenStore:  tokenStore,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	dispatcher := events.NewInMemoryDispatcher()
	accountService := service.NewAccountService(accountRepo, cfg.Auth.BcryptCost)
	categoryService := service.NewCategoryService(categoryRepo)
	dishService := service.NewDishService(dishRepo, categoryRepo)
	tableService := service.NewTableService(tableRepo, cfg.Public)
	orderService := service.NewOrderService(orderRepo, dishRepo, guestRepo, dispatcher)

	hub := realtime.NewHub(logger)
	bridge := realtime.NewBridge(hub, logger)
	bridge.RegisterHandlers(dispatcher)
	realtimeServer := realtime.NewServer(cfg.Realtime, hub, authService.TokenManager(), logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Guest:          handlers.NewGuestHandler(authService, orderService),
		Categories:     handlers.NewCategoryHandler(categoryService),
		Dishes:         handlers.NewDishHandler(dishService),
		Tables:         handlers.NewTableHandler(tableService),
		Orders:         handlers.NewOrderHandler(orderService),
		Accounts:       handlers.NewAccountHandler(accountService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	go func() {
		if err := realtimeServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("realtime listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = realtimeServer.Shutdown(shutdownCtx)
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

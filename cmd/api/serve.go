package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/marketplace-service/internal/api/http"
	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/persistence"
	"github.com/spec-kit/marketplace-service/internal/relay"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the chat relay",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, logger := bootstrap()
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if cfg.Postgres.DSN == "" {
		return errors.New("POSTGRES_DSN is required")
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, persistence.MigrateUp, logger); err != nil {
			logger.Error("failed to run migrations", zap.Error(err))
			return err
		}
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to connect postgres", zap.Error(err))
		return err
	}
	defer pg.Close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartNotificationWorker(dispatcher, logger)

	app := buildAPI(cfg, logger, metrics, dispatcher, pg, redis)
	relayServer, relayBus := buildRelay(ctx, cfg, logger, metrics, redis)

	errCh := make(chan error, 2)
	go func() {
		logger.Info("http api listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			errCh <- err
		}
	}()
	go func() {
		logger.Info("relay listening", zap.String("addr", cfg.Relay.Addr), zap.String("bus", relayBus))
		if err := relayServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case runErr = <-errCh:
		logger.Error("listener failed", zap.Error(runErr))
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := relayServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("relay shutdown", zap.Error(err))
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	return runErr
}

func buildAPI(cfg *config.Config, logger *zap.Logger, metrics *observability.Metrics, dispatcher events.Dispatcher, pg *persistence.Postgres, redis *persistence.Redis) *fiber.App {
	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	communityRepo := repository.NewCommunityRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	likeRepo := repository.NewLikeRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	storeRepo := repository.NewStoreRepository(pool)
	themeRepo := repository.NewThemeRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, auth.NewPasswordHasher(cfg.Auth.BcryptCost))
	postService := service.NewPostService(service.PostDependencies{
		PostRepo:      postRepo,
		LikeRepo:      likeRepo,
		CommunityRepo: communityRepo,
		Dispatcher:    dispatcher,
	})
	themeService := service.NewThemeService(service.ThemeDependencies{
		ThemeRepo:  themeRepo,
		StoreRepo:  storeRepo,
		Guard:      auth.NewGuard(storeRepo),
		Dispatcher: dispatcher,
	})

	required := map[string]handlers.Pinger{"postgres": pg}
	optional := map[string]handlers.Pinger{}
	if redis.Available() {
		optional["redis"] = redis
	}

	validate := handlers.NewValidator()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:       cfg.App.RequestTimeout(),
		AllowedOrigin: cfg.App.FrontendURL,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, required, optional),
		Auth: handlers.NewAuthHandler(authService, validate, handlers.CookieSettings{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
		}),
		Communities:    handlers.NewCommunityHandler(service.NewCommunityService(communityRepo), validate),
		Posts:          handlers.NewPostHandler(postService, validate),
		Stores:         handlers.NewStoreHandler(service.NewStoreService(storeRepo, dispatcher), validate),
		Themes:         handlers.NewThemeHandler(themeService),
		Transactions:   handlers.NewTransactionHandler(service.NewTransactionService(transactionRepo, dispatcher), validate),
		AuthMiddleware: auth.NewAuthMiddleware(auth.NewResolver(tokens), cfg.Auth.CookieName),
		Metrics:        metrics,
	})
	return app
}

// buildRelay returns the relay listener and the name of the bus it fans out on.
func buildRelay(ctx context.Context, cfg *config.Config, logger *zap.Logger, metrics *observability.Metrics, redis *persistence.Redis) (*http.Server, string) {
	hub := relay.NewHub(cfg.Relay.SendBuffer, metrics)

	var bus relay.Bus = relay.NewLocalBus(hub)
	busName := "local"
	if redis.Available() {
		redisBus := relay.NewRedisBus(redis.Client, cfg.Relay.RedisChannel, hub, logger)
		go func() {
			if err := redisBus.Listen(ctx); err != nil {
				logger.Error("relay redis listener stopped", zap.Error(err))
			}
		}()
		bus = redisBus
		busName = "redis"
	}

	server := relay.NewServer(hub, bus, logger, metrics)
	return &http.Server{
		Addr:              cfg.Relay.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}, busName
}

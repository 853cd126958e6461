package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/evaluaasi/support-gateway/internal/api/http"
	"github.com/evaluaasi/support-gateway/internal/api/http/handlers"
	"github.com/evaluaasi/support-gateway/internal/auth"
	"github.com/evaluaasi/support-gateway/internal/backend"
	"github.com/evaluaasi/support-gateway/internal/cache"
	"github.com/evaluaasi/support-gateway/internal/config"
	"github.com/evaluaasi/support-gateway/internal/events"
	"github.com/evaluaasi/support-gateway/internal/observability"
	"github.com/evaluaasi/support-gateway/internal/persistence"
	"github.com/evaluaasi/support-gateway/internal/preview"
	"github.com/evaluaasi/support-gateway/internal/query"
	"github.com/evaluaasi/support-gateway/internal/service"
	"github.com/evaluaasi/support-gateway/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	api := backend.NewClient(backend.Config{
		BaseURL:      cfg.Backend.BaseURL,
		Timeout:      cfg.Backend.Timeout(),
		ServiceToken: cfg.Backend.ServiceToken,
		UserAgent:    cfg.App.Name + "/" + cfg.App.Version,
		Debug:        cfg.Backend.Debug,
	}, logger)

	cacheOpts := cache.Options{
		DefaultTTL:      cfg.Cache.OperationalTTL(),
		CleanupInterval: cfg.Cache.CleanupInterval(),
		TTLs: map[cache.Kind]time.Duration{
			cache.KindCampuses: cfg.Cache.ReferenceTTL(),
			cache.KindPartners: cfg.Cache.ReferenceTTL(),
			cache.KindTickets:  cfg.Cache.OperationalTTL(),
			cache.KindCalendar: cfg.Cache.OperationalTTL(),
			cache.KindUsers:    cfg.Cache.OperationalTTL(),
		},
		FetchTimeout: cfg.App.RequestTimeout(),
		Recorder:     metrics,
		Logger:       logger,
	}
	healthDeps := map[string]handlers.Pinger{"backend": api}

	if cfg.Cache.UseRedis {
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		cacheOpts.Remote = redis
		healthDeps["redis"] = redis
	}
	queryCache := cache.New(cacheOpts)

	dispatcher := events.NewInMemoryDispatcher()
	supportService := service.NewSupportService(service.Options{
		Preview:     cfg.App.Preview,
		FanOutLimit: cfg.Backend.FanOutLimit,
		Location:    cfg.App.Location(),
	}, service.SupportDependencies{
		Backend:    api,
		Fixtures:   preview.Default(),
		Logger:     logger,
		Metrics:    metrics,
		Dispatcher: dispatcher,
	})
	worker.StartInvalidationWorker(service.NewInvalidationService(dispatcher, queryCache, logger))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.App.Preview, healthDeps),
		Support:        handlers.NewSupportHandler(query.NewClient(supportService, queryCache)),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
		AllowedRoles:   auth.Roles(cfg.Auth.AllowedRoles),
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.Bool("preview", cfg.App.Preview))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

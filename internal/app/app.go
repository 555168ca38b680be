// Package app wires the storefront's dependency graph and runs the HTTP
// server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	cartsvc "github.com/cintaaprilianti/medina-stuff-sub001/internal/cart"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/catalog"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/config"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/event"
	handler "github.com/cintaaprilianti/medina-stuff-sub001/internal/handler/http"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/stats"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/store"
	memorystore "github.com/cintaaprilianti/medina-stuff-sub001/internal/store/memory"
	redisstore "github.com/cintaaprilianti/medina-stuff-sub001/internal/store/redis"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/upstream"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/health"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/httpclient"
	pkgkafka "github.com/cintaaprilianti/medina-stuff-sub001/pkg/kafka"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Session store: Redis when configured, in-memory otherwise.
	var (
		sessionStore store.SessionStore
		rdb          *redis.Client
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		sessionStore = redisstore.New(rdb, cfg.SessionTTL())
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
	} else {
		sessionStore = memorystore.New()
		logger.Warn("no Redis configured, using in-memory session store")
	}

	// Kafka producer, optional.
	var (
		producer      *pkgkafka.Producer
		eventProducer cartsvc.Publisher
	)
	if cfg.KafkaEnabled() {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		eventProducer = event.NewProducer(producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Warn("no Kafka brokers configured, event publishing disabled")
	}

	// Commerce API client behind retry and circuit breaker.
	httpClient := httpclient.New(httpclient.DefaultConfig())
	breaker := httpclient.NewCircuitBreakerClient(httpClient, httpclient.DefaultCircuitBreakerConfig("upstream"), logger)
	api := upstream.NewClient(cfg.UpstreamBaseURL, breaker, logger)

	// Services.
	notifier := event.NewNotifier()
	cartService := cartsvc.NewService(sessionStore, notifier, eventProducer, logger)
	catalogService := catalog.NewService(api, cfg.CatalogCacheTTL(), logger)
	statsService := stats.NewService(api, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	if rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	// HTTP router.
	router := handler.NewRouter(
		handler.NewCatalogHandler(catalogService, api, sessionStore, logger),
		handler.NewCartHandler(cartService, catalogService, api, logger),
		handler.NewSessionHandler(sessionStore, logger),
		handler.NewAdminHandler(api, statsService, catalogService, sessionStore, logger),
		sessionStore,
		healthHandler,
		logger,
		handler.RouterConfig{
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
			AllowedOrigins: cfg.CORSAllowedOrigins,
		},
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}

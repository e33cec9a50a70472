package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/omega-wallet/storefront-api/api/routes"
	"github.com/omega-wallet/storefront-api/internal/cart"
	"github.com/omega-wallet/storefront-api/internal/catalog"
	"github.com/omega-wallet/storefront-api/internal/checkout"
	"github.com/omega-wallet/storefront-api/internal/commerce"
	"github.com/omega-wallet/storefront-api/internal/orders"
	"github.com/omega-wallet/storefront-api/internal/reviews"
	"github.com/omega-wallet/storefront-api/internal/session"
	"github.com/omega-wallet/storefront-api/internal/support"
	"github.com/omega-wallet/storefront-api/pkg/config"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/metrics"
	"github.com/omega-wallet/storefront-api/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpStats := metrics.NewHTTPMetrics(registry)
	checkoutStats := metrics.NewCheckoutMetrics(registry)

	platform, err := commerce.NewClient(cfg.Commerce, &http.Client{Timeout: 30 * time.Second}, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create commerce client", err)
		os.Exit(1)
	}

	sessionService, err := session.NewService(redisClient, cfg.Gate, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(platform, redisClient, cfg.Catalog.CacheTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartSlot := cart.NewSlot(redisClient, logg)
	cartService, err := cart.NewService(cartSlot, catalogService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	flowStore := checkout.NewFlowStore(redisClient, logg)
	checkoutService, err := checkout.NewService(cartService, platform, flowStore, cfg.Checkout, checkoutStats, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(platform, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(platform, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	supportService, err := support.NewService(cfg.SMTP, platform, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create support service", err)
		os.Exit(1)
	}

	handler := routes.NewRouter(
		cfg,
		logg,
		redisClient,
		registry,
		httpStats,
		sessionService,
		catalogService,
		cartService,
		checkoutService,
		flowStore,
		ordersService,
		reviewService,
		supportService,
		platform,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(context.Background(), "server stopped", err)
		os.Exit(1)
	}
}

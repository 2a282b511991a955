package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bazaarly/bazaarly-backend/api/routes"
	"github.com/bazaarly/bazaarly-backend/internal/addresses"
	"github.com/bazaarly/bazaarly-backend/internal/auth"
	"github.com/bazaarly/bazaarly-backend/internal/cart"
	"github.com/bazaarly/bazaarly-backend/internal/checkout"
	"github.com/bazaarly/bazaarly-backend/internal/coupons"
	"github.com/bazaarly/bazaarly-backend/internal/orders"
	"github.com/bazaarly/bazaarly-backend/internal/pricing"
	"github.com/bazaarly/bazaarly-backend/internal/products"
	"github.com/bazaarly/bazaarly-backend/internal/users"
	"github.com/bazaarly/bazaarly-backend/internal/vendors"
	"github.com/bazaarly/bazaarly-backend/pkg/auth/session"
	"github.com/bazaarly/bazaarly-backend/pkg/config"
	"github.com/bazaarly/bazaarly-backend/pkg/db"
	"github.com/bazaarly/bazaarly-backend/pkg/logger"
	"github.com/bazaarly/bazaarly-backend/pkg/metrics"
	"github.com/bazaarly/bazaarly-backend/pkg/migrate"
	"github.com/bazaarly/bazaarly-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	vendorRepo := vendors.NewRepository(dbClient.DB())
	addressRepo := addresses.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())
	couponsRepo := coupons.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	calculator, err := pricing.NewCalculator(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "failed to create price calculator", err)
		os.Exit(1)
	}

	couponEngine, err := coupons.NewEngine(couponsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create coupon engine", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(userRepo, vendorRepo, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	vendorsService, err := vendors.NewService(dbClient, vendorRepo, userRepo, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendors service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(
		dbClient,
		cartRepo,
		addressRepo,
		ordersRepo,
		productsRepo,
		couponsRepo,
		couponEngine,
		calculator,
		metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Sessions:        sessionManager,
			AuthService:     authService,
			VendorsService:  vendorsService,
			CheckoutService: checkoutService,
			OrdersService:   ordersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

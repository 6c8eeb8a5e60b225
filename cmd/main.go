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

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"storefront/config"
	"storefront/docs"
	"storefront/internal/pkg/cache"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/events"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/token"

	"storefront/internal/api/cart"
	"storefront/internal/api/order"
	"storefront/internal/api/payment"
	"storefront/internal/api/product"
	"storefront/internal/api/review"
	"storefront/internal/api/router"
	"storefront/internal/api/user"
	"storefront/internal/repository/cartrepo"
	"storefront/internal/repository/orderrepo"
	"storefront/internal/repository/paymentrepo"
	"storefront/internal/repository/productrepo"
	"storefront/internal/repository/reviewrepo"
	"storefront/internal/repository/userrepo"
	"storefront/internal/service/cartservice"
	"storefront/internal/service/orderservice"
	"storefront/internal/service/paymentservice"
	"storefront/internal/service/productservice"
	"storefront/internal/service/reviewservice"
	"storefront/internal/service/userservice"
)

// @title Storefront API
// @version 1.0
// @description Users, catalog, carts, orders, payments and reviews.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env not found, reading configuration from the environment only")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if zl, ok := appLog.(*logger.ZapLogger); ok {
		defer zl.Sync()
	}
	appLog.Info("configuration loaded", map[string]interface{}{"env": cfg.Environment, "port": cfg.Port})

	// Money is rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
	docs.SwaggerInfo.Host = cfg.SwaggerHost

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("failed to connect to the database", err)
	}
	defer db.Close()
	appLog.Info("postgres connection established", nil)

	var cacheClient cache.Client = cache.NoopClient{}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			appLog.Warn("redis unavailable, running without cache", map[string]interface{}{"error": err.Error()})
		} else {
			cacheClient = rc
			appLog.Info("redis connection established", map[string]interface{}{"addr": cfg.RedisAddr})
		}
	}
	defer cacheClient.Close()

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, appLog)
		appLog.Info("publishing domain events", map[string]interface{}{"brokers": cfg.KafkaBrokers, "topic": cfg.KafkaTopic})
	}
	defer publisher.Close()

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// Repository -> Service -> Handler
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)
	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	cartRepo := cartrepo.NewCartRepository(db, cfg.DBTimeout, appLog)
	orderRepo := orderrepo.NewOrderRepository(db, cfg.DBTimeout, appLog)
	paymentRepo := paymentrepo.NewPaymentRepository(db, cfg.DBTimeout, appLog)
	reviewRepo := reviewrepo.NewReviewRepository(db, cfg.DBTimeout, appLog)

	userSvc := userservice.NewService(userRepo, tokenSvc, appLog)
	productSvc := productservice.NewService(productRepo, appLog)
	cartSvc := cartservice.NewService(cartRepo, productRepo, publisher, appLog)
	orderSvc := orderservice.NewService(orderRepo, productRepo, publisher, appLog)
	paymentSvc := paymentservice.NewService(paymentRepo, orderRepo, publisher, appLog)
	reviewSvc := reviewservice.NewService(reviewRepo, productRepo, appLog)

	handler := router.NewRouter(router.Handlers{
		User:    user.NewHandler(userSvc, appLog),
		Product: product.NewHandler(productSvc, appLog),
		Cart:    cart.NewHandler(cartSvc, appLog),
		Order:   order.NewHandler(orderSvc, appLog),
		Payment: payment.NewHandler(paymentSvc, appLog),
		Review:  review.NewHandler(reviewSvc, appLog),
	}, router.Options{
		Tokens:          tokenSvc,
		Cache:           cacheClient,
		RateLimit:       cfg.RateLimitMaxRequests,
		RateLimitWindow: cfg.RateLimitPeriod,
		SwaggerHost:     cfg.SwaggerHost,
	}, appLog)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("storefront API listening", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutdown signal received, draining connections", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("forced server shutdown", err)
	}
	appLog.Info("server stopped", nil)
}

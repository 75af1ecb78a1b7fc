package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/pkg/logger"
	"storefront/shop-service/internal/app/shop/config"
	"storefront/shop-service/internal/app/shop/handler"
	"storefront/shop-service/internal/app/shop/processor"
	"storefront/shop-service/internal/app/shop/repository"
	"storefront/shop-service/internal/app/shop/service"
	"storefront/shop-service/internal/app/shop/util"
)

const serviceName = "shop-service"

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load()
	if err != nil {
		logger.Init(serviceName, "info")
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// === ЛОГГЕР ===
	logger.Init(serviceName, cfg.Log.Level)
	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Log.LogstashAddr).Msg("logstash unavailable, logging to stdout only")
		}
	}

	clock := service.SystemClock{Location: cfg.Location()}
	healthChecks := make(map[string]handler.Pinger)

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Без Redis список категорий читается напрямую из реестра
	var categoryCache util.CategoryCache
	if cfg.Redis.Enabled() {
		redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Address()).Msg("redis unavailable, category cache disabled")
		} else {
			defer redisClient.Close()
			categoryCache = redisClient
			healthChecks["redis"] = redisClient
			logger.Info().Str("addr", cfg.Redis.Address()).Msg("connected to redis")
		}
	}

	// === ИНИЦИАЛИЗАЦИЯ KAFKA PRODUCER ===
	var publisher util.MessagePublisher
	if cfg.Kafka.Enabled() {
		kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()
		publisher = kafkaProducer
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("kafka producer initialized")
	}

	// === РЕПОЗИТОРИИ ===
	categoryRepo := repository.NewCategoryRepository()
	productRepo := repository.NewProductRepository()
	couponRepo := repository.NewCouponRepository()
	orderRepo := repository.NewOrderRepository()
	userRepo := repository.NewUserRepository()

	// === СЕРВИСЫ ===
	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)

	categorySvc := service.NewCategoryService(categoryRepo, categoryCache, clock)
	productSvc := service.NewProductService(productRepo, categoryRepo, publisher, clock)
	couponSvc := service.NewCouponService(couponRepo, clock)
	userSvc := service.NewUserService(userRepo, jwtManager, clock)
	orderSvc := service.NewOrderService(orderRepo, userSvc, productSvc, publisher, clock)
	statsSvc := service.NewStatsService(orderSvc, couponSvc)

	// === ПЛАНИРОВЩИК ===
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	scheduler := processor.NewCronScheduler(statsSvc)
	if err := scheduler.Start(ctx, cfg.Stats.Schedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Stats.Schedule).Msg("failed to start cron scheduler")
	}
	defer scheduler.Stop()

	// === HTTP ===
	handlers := &handler.Handlers{
		Categories: handler.NewCategoryHandler(categorySvc),
		Products:   handler.NewProductHandler(productSvc),
		Coupons:    handler.NewCouponHandler(couponSvc),
		Orders:     handler.NewOrderHandler(orderSvc),
		Users:      handler.NewUserHandler(userSvc),
		Health:     handler.NewHealthHandler(serviceName, healthChecks),
	}
	router := handler.SetupRoutes(handlers, handler.NewAuthMiddleware(jwtManager), serviceName)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("starting shop service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down shop service")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("shop service stopped gracefully")
}

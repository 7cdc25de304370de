package main

// @title RouteFare Microservice API
// @version 1.0.0
// @description Микросервис разрешения маршрутов и расчёта стоимости поездок для райдшеринг-платформы. Разрешает названия мест в координаты, строит дорожные маршруты и считает стоимость по тарифу.
// @description
// @description Основные возможности:
// @description - Геокодирование названий мест с региональной проверкой результатов
// @description - Дорожные маршруты и дистанции с прямолинейным fallback
// @description - Расчёт стоимости поездки по дистанции и числу мест
// @description - Пакетное разрешение пар подача/высадка (синхронно и асинхронно)
// @description - Статистика по журналу расчётов

// @contact.name API Support
// @contact.email support@routefare-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/routefare-microservice/docs"
	"github.com/routefare-microservice/internal/config"
	httpDelivery "github.com/routefare-microservice/internal/delivery/http"
	"github.com/routefare-microservice/internal/delivery/http/handler"
	"github.com/routefare-microservice/internal/infrastructure/osrm"
	"github.com/routefare-microservice/internal/infrastructure/photon"
	"github.com/routefare-microservice/internal/pkg/logger"
	"github.com/routefare-microservice/internal/repository/cache"
	"github.com/routefare-microservice/internal/repository/postgres"
	redisRepo "github.com/routefare-microservice/internal/repository/redis"
	"github.com/routefare-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting RouteFare Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	geocodeRepo := photon.NewPhotonClient(&cfg.Geocoder, log)
	routingRepo := osrm.NewOSRMClient(&cfg.Router, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	quoteRepo := postgres.NewQuoteRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	routeUC := usecase.NewRouteUseCase(
		routingRepo,
		geocodeRepo,
		cacheRepo,
		log,
		cfg.Router.FallbackSpeedKmh,
		cfg.Cache.RouteCacheTTL,
		cfg.Cache.GeocodeCacheTTL,
	)

	fareUC := usecase.NewFareUseCase(
		routeUC,
		quoteRepo,
		log,
		cfg.Fare,
	)

	batchUC := usecase.NewBatchUseCase(
		routeUC,
		quoteRepo,
		streamRepo,
		cacheRepo,
		log,
		cfg.Cache.JobResultTTL,
	)

	statsUC := usecase.NewStatsUseCase(
		quoteRepo,
		cacheRepo,
		log,
		cfg.Cache.StatsCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	geocodeHandler := handler.NewGeocodeHandler(routeUC, log)
	routeHandler := handler.NewRouteHandler(routeUC, log)
	quoteHandler := handler.NewQuoteHandler(fareUC, log)
	batchHandler := handler.NewBatchHandler(batchUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		geocodeHandler,
		routeHandler,
		quoteHandler,
		batchHandler,
		statsHandler,
		[]httpDelivery.HealthCheck{
			{Name: "postgres", Check: db.Health},
			{Name: "redis", Check: redisClient.Health},
		},
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

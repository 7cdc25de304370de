package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/config"
	"github.com/routefare-microservice/internal/delivery/http/handler"
	"github.com/routefare-microservice/internal/delivery/http/middleware"
)

// HealthCheck - именованная проверка зависимости для /health
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	geocodeHandler *handler.GeocodeHandler
	routeHandler   *handler.RouteHandler
	quoteHandler   *handler.QuoteHandler
	batchHandler   *handler.BatchHandler
	statsHandler   *handler.StatsHandler

	healthChecks []HealthCheck
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	geocodeHandler *handler.GeocodeHandler,
	routeHandler *handler.RouteHandler,
	quoteHandler *handler.QuoteHandler,
	batchHandler *handler.BatchHandler,
	statsHandler *handler.StatsHandler,
	healthChecks []HealthCheck,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "RouteFare Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		geocodeHandler: geocodeHandler,
		routeHandler:   routeHandler,
		quoteHandler:   quoteHandler,
		batchHandler:   batchHandler,
		statsHandler:   statsHandler,
		healthChecks:   healthChecks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check с пингом зависимостей
	api.Get("/health", s.healthHandler)

	// Geocoding
	api.Get("/geocode", s.geocodeHandler.Geocode)

	// Routing
	api.Post("/route", s.routeHandler.GetRoute)
	api.Post("/route/distance", s.routeHandler.GetDistance)

	// Batch resolution
	api.Post("/route/batch", s.batchHandler.ResolveBatch)
	api.Post("/route/batch/async", s.batchHandler.SubmitBatchJob)
	api.Get("/route/batch/jobs/:id", s.batchHandler.GetJobResult)

	// Fare
	api.Post("/quote", s.quoteHandler.Quote)
	api.Post("/quote/estimate", s.quoteHandler.EstimateFare)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
}

// healthHandler пингует зависимости; любая упавшая проверка даёт 503
func (s *Server) healthHandler(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	deps := fiber.Map{}

	for _, hc := range s.healthChecks {
		if err := hc.Check(ctx); err != nil {
			s.logger.Warn("Health check failed",
				zap.String("dependency", hc.Name),
				zap.Error(err))
			deps[hc.Name] = err.Error()
			status = "degraded"
		} else {
			deps[hc.Name] = "ok"
		}
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}

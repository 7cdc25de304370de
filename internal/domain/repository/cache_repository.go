package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/routefare-microservice/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Геокодированные точки по нормализованному названию места
	GetGeocodedPoint(ctx context.Context, place string) (*domain.GeoPoint, error)
	SetGeocodedPoint(ctx context.Context, place string, point *domain.GeoPoint, ttl time.Duration) error

	// Точные (не approximate) маршруты между парами координат
	GetRoute(ctx context.Context, from, to domain.GeoPoint) (*domain.RouteResult, error)
	SetRoute(ctx context.Context, from, to domain.GeoPoint, route *domain.RouteResult, ttl time.Duration) error

	// Результаты асинхронных заданий по job id
	GetJobResult(ctx context.Context, jobID uuid.UUID) (*domain.RouteResolveDoneEvent, error)
	SetJobResult(ctx context.Context, jobID uuid.UUID, result *domain.RouteResolveDoneEvent, ttl time.Duration) error

	GetStats(ctx context.Context) (*domain.Statistics, error)
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error
}

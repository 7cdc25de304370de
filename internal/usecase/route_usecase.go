package usecase

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/domain"
	"github.com/routefare-microservice/internal/domain/repository"
	"github.com/routefare-microservice/internal/pkg/errors"
	"github.com/routefare-microservice/internal/pkg/utils"
)

// RouteUseCase - use case для разрешения точек и маршрутов.
// Route никогда не падает из-за недоступности роутинг-сервиса:
// вместо этого возвращается straight-line fallback с пометкой approximate.
type RouteUseCase struct {
	routingRepo repository.RoutingRepository
	geocodeRepo repository.GeocodingRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	fallbackKmh float64
	routeTTL    time.Duration
	geocodeTTL  time.Duration
}

// NewRouteUseCase - создание нового RouteUseCase
func NewRouteUseCase(
	routingRepo repository.RoutingRepository,
	geocodeRepo repository.GeocodingRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	fallbackSpeedKmh float64,
	routeTTL time.Duration,
	geocodeTTL time.Duration,
) *RouteUseCase {
	return &RouteUseCase{
		routingRepo: routingRepo,
		geocodeRepo: geocodeRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		fallbackKmh: fallbackSpeedKmh,
		routeTTL:    routeTTL,
		geocodeTTL:  geocodeTTL,
	}
}

// ResolvePoint разрешает сторону пары в координаты: готовая точка имеет
// приоритет, иначе геокодируем название (с кешем). Пара без точки и без
// названия - ErrMalformedPair.
func (uc *RouteUseCase) ResolvePoint(ctx context.Context, label string, point *domain.GeoPoint) (*domain.GeoPoint, error) {
	if point != nil {
		if !utils.ValidateCoordinates(point.Lat, point.Lon) {
			return nil, errors.ErrInvalidCoordinates
		}
		return point, nil
	}

	if label == "" {
		return nil, errors.ErrMalformedPair
	}

	// Кеш геокодирования: названия городов стабильны
	if uc.cacheRepo != nil {
		if cached, err := uc.cacheRepo.GetGeocodedPoint(ctx, label); err == nil && cached != nil {
			return cached, nil
		}
	}

	resolved, err := uc.geocodeRepo.Geocode(ctx, label)
	if err != nil {
		return nil, err
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetGeocodedPoint(ctx, label, resolved, uc.geocodeTTL); err != nil {
			uc.logger.Warn("Failed to cache geocoded point", zap.String("place", label), zap.Error(err))
		}
	}

	return resolved, nil
}

// Route возвращает маршрут между двумя точками. При сбое или таймауте
// роутинг-сервиса возвращается двухточечный straight-line маршрут
// с дистанцией по haversine и пометкой IsApproximate.
func (uc *RouteUseCase) Route(ctx context.Context, from, to domain.GeoPoint) (*domain.RouteResult, error) {
	if !utils.ValidateCoordinates(from.Lat, from.Lon) || !utils.ValidateCoordinates(to.Lat, to.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	if uc.cacheRepo != nil {
		if cached, err := uc.cacheRepo.GetRoute(ctx, from, to); err == nil && cached != nil {
			return cached, nil
		}
	}

	route, err := uc.routingRepo.GetRoute(ctx, from, to)
	if err != nil {
		uc.logger.Warn("Routing service unavailable, using straight line fallback",
			zap.Float64("from_lat", from.Lat),
			zap.Float64("from_lon", from.Lon),
			zap.Float64("to_lat", to.Lat),
			zap.Float64("to_lon", to.Lon),
			zap.Error(err))
		return uc.fallbackRoute(from, to), nil
	}

	// Кешируем только точные маршруты
	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetRoute(ctx, from, to, route, uc.routeTTL); err != nil {
			uc.logger.Warn("Failed to cache route", zap.Error(err))
		}
	}

	return route, nil
}

// EstimateDistance возвращает дистанцию без геометрии (дешёвый вызов для
// расчёта тарифа); fallback тот же, но без полилинии
func (uc *RouteUseCase) EstimateDistance(ctx context.Context, from, to domain.GeoPoint) (*domain.RouteResult, error) {
	if !utils.ValidateCoordinates(from.Lat, from.Lon) || !utils.ValidateCoordinates(to.Lat, to.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	route, err := uc.routingRepo.GetDistance(ctx, from, to)
	if err != nil {
		uc.logger.Warn("Routing service unavailable for distance, using haversine",
			zap.Error(err))
		fallback := uc.fallbackRoute(from, to)
		fallback.Path = nil
		return fallback, nil
	}

	return route, nil
}

// fallbackRoute строит прямую между точками: haversine-дистанция и
// длительность из средней скорости fallbackKmh
func (uc *RouteUseCase) fallbackRoute(from, to domain.GeoPoint) *domain.RouteResult {
	distanceKm := utils.RoundKm(utils.HaversineDistance(from.Lat, from.Lon, to.Lat, to.Lon))

	return &domain.RouteResult{
		Path:            []domain.GeoPoint{from, to},
		DistanceKm:      distanceKm,
		DurationMinutes: int(math.Round(distanceKm / uc.fallbackKmh * 60)),
		IsApproximate:   true,
	}
}

package repository

import (
	"context"

	"github.com/routefare-microservice/internal/domain"
)

// RoutingRepository определяет методы для работы с внешним роутинг-сервисом.
// Клиент возвращает ошибку при сбое; straight-line fallback живёт уровнем
// выше, в RouteUseCase.
type RoutingRepository interface {
	// GetRoute возвращает дорожный маршрут с полной геометрией
	GetRoute(ctx context.Context, from, to domain.GeoPoint) (*domain.RouteResult, error)

	// GetDistance возвращает только дистанцию и длительность (overview=false),
	// когда полилиния не нужна
	GetDistance(ctx context.Context, from, to domain.GeoPoint) (*domain.RouteResult, error)
}

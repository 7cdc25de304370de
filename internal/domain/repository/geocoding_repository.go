package repository

import (
	"context"

	"github.com/routefare-microservice/internal/domain"
)

// GeocodingRepository определяет методы для работы с внешним геокодером.
// Один запрос на вызов, без ретраев: при сбое вызывающая сторона
// пропускает пару, а не падает.
type GeocodingRepository interface {
	// Geocode разрешает название места в координаты с учётом региональной
	// подсказки. Возвращает errors.ErrLocationNotFound если место не найдено
	// или результат вне региона правдоподобия.
	Geocode(ctx context.Context, place string) (*domain.GeoPoint, error)
}

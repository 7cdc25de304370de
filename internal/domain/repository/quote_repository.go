package repository

import (
	"context"

	"github.com/routefare-microservice/internal/domain"
)

// QuoteRepository - журнал выданных расчётов и разрешённых батчей.
// Запись best-effort: сбой журнала не должен ломать основной поток.
type QuoteRepository interface {
	// SaveQuote сохраняет выданный расчёт стоимости
	SaveQuote(ctx context.Context, quote *domain.FareQuote) error

	// SaveResolution сохраняет итог разрешения батча
	SaveResolution(ctx context.Context, result *domain.BatchResult) error

	// GetStatistics возвращает агрегаты по журналу
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/routefare-microservice/internal/domain"
	"github.com/routefare-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// quoteRepository - журнал расчётов и разрешений маршрутов.
// Таблицы:
//
//	fare_quotes(id, base_amount, per_km_rate, distance_km, seat_count, total_amount, currency, created_at)
//	route_resolutions(id, total_pairs, resolved_pairs, skipped_pairs, approximate_routes, total_distance_km, created_at)
type quoteRepository struct {
	db *DB
}

func NewQuoteRepository(db *DB) repository.QuoteRepository {
	return &quoteRepository{db: db}
}

// SaveQuote сохраняет выданный расчёт стоимости
func (r *quoteRepository) SaveQuote(ctx context.Context, quote *domain.FareQuote) error {
	query := `
		INSERT INTO fare_quotes (base_amount, per_km_rate, distance_km, seat_count, total_amount, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		quote.BaseAmount,
		quote.PerKmRate,
		quote.DistanceKm,
		quote.SeatCount,
		quote.TotalAmount,
		quote.Currency,
		time.Now().UTC(),
	)
	if err != nil {
		r.db.logger.Error("Failed to save fare quote", zap.Error(err))
		return fmt.Errorf("save fare quote: %w", err)
	}

	return nil
}

// SaveResolution сохраняет итог разрешения батча
func (r *quoteRepository) SaveResolution(ctx context.Context, result *domain.BatchResult) error {
	var totalDistance float64
	for _, entry := range result.Entries {
		totalDistance += entry.Route.DistanceKm
	}

	query := `
		INSERT INTO route_resolutions (total_pairs, resolved_pairs, skipped_pairs, approximate_routes, total_distance_km, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		result.Meta.TotalPairs,
		result.Meta.ResolvedPairs,
		result.Meta.SkippedPairs,
		result.Meta.ApproximateRoutes,
		totalDistance,
		time.Now().UTC(),
	)
	if err != nil {
		r.db.logger.Error("Failed to save route resolution", zap.Error(err))
		return fmt.Errorf("save route resolution: %w", err)
	}

	return nil
}

// GetStatistics возвращает агрегаты по журналу одним запросом
func (r *quoteRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM fare_quotes)                                   AS total_quotes,
			(SELECT COUNT(*) FROM route_resolutions)                             AS total_batches,
			COALESCE((SELECT SUM(total_pairs) FROM route_resolutions), 0)        AS total_pairs,
			COALESCE((SELECT SUM(resolved_pairs) FROM route_resolutions), 0)     AS resolved_pairs,
			COALESCE((SELECT SUM(approximate_routes) FROM route_resolutions), 0) AS approximate_routes,
			COALESCE((
				SELECT SUM(total_distance_km) / NULLIF(SUM(resolved_pairs), 0)
				FROM route_resolutions
			), 0) AS avg_distance_km`

	var stats domain.Statistics
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		r.db.logger.Error("Failed to query statistics", zap.Error(err))
		return nil, fmt.Errorf("query statistics: %w", err)
	}

	stats.LastUpdated = time.Now().UTC()
	return &stats, nil
}

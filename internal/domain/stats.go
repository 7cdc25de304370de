package domain

import "time"

// Statistics - агрегированная статистика по расчётам и разрешённым маршрутам
type Statistics struct {
	TotalQuotes       int       `json:"total_quotes" db:"total_quotes"`
	TotalBatches      int       `json:"total_batches" db:"total_batches"`
	TotalPairs        int       `json:"total_pairs" db:"total_pairs"`
	ResolvedPairs     int       `json:"resolved_pairs" db:"resolved_pairs"`
	ApproximateRoutes int       `json:"approximate_routes" db:"approximate_routes"`
	AvgDistanceKm     float64   `json:"avg_distance_km" db:"avg_distance_km"`
	LastUpdated       time.Time `json:"last_updated"`
}

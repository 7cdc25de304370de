package domain

// FareQuote - расчёт стоимости поездки.
// Инвариант: TotalAmount = (BaseAmount + PerKmRate*DistanceKm) * SeatCount,
// округлённый до 2 знаков.
type FareQuote struct {
	BaseAmount  float64 `json:"base_amount"`
	PerKmRate   float64 `json:"per_km_rate"`
	DistanceKm  float64 `json:"distance_km"`
	SeatCount   int     `json:"seat_count"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
}

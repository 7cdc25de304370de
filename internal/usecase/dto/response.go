package dto

import (
	"github.com/google/uuid"
	"github.com/routefare-microservice/internal/domain"
)

// GeocodeResponse - ответ на геокодирование
type GeocodeResponse struct {
	Place string          `json:"place"`
	Point domain.GeoPoint `json:"point"`
}

// RouteResponse - ответ с маршрутом и разрешёнными конечными точками
type RouteResponse struct {
	From  domain.GeoPoint    `json:"from"`
	To    domain.GeoPoint    `json:"to"`
	Route domain.RouteResult `json:"route"`
}

// QuoteResponse - ответ с расчётом стоимости
type QuoteResponse struct {
	Quote domain.FareQuote `json:"quote"`
}

// EstimateFareResponse - оценка стоимости по паре мест
type EstimateFareResponse struct {
	Pickup        domain.GeoPoint  `json:"pickup"`
	Drop          domain.GeoPoint  `json:"drop"`
	DistanceKm    float64          `json:"distance_km"`
	IsApproximate bool             `json:"is_approximate"`
	Quote         domain.FareQuote `json:"quote"`
}

// BatchRouteResponse - ответ на разрешение батча
type BatchRouteResponse struct {
	Entries        []domain.BatchEntry `json:"entries"`
	BoundingPoints []domain.GeoPoint   `json:"bounding_points"`
	Warnings       []string            `json:"warnings,omitempty"`
	Meta           domain.BatchMeta    `json:"meta"`
}

// AsyncJobResponse - принятое асинхронное задание
type AsyncJobResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

// JobResultResponse - результат асинхронного задания
type JobResultResponse struct {
	JobID  uuid.UUID           `json:"job_id"`
	Status string              `json:"status"`
	Result *BatchRouteResponse `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// StatsResponse - агрегированная статистика сервиса
type StatsResponse struct {
	Stats domain.Statistics `json:"stats"`
}

// FromBatchResult конвертирует domain-результат батча в response
func FromBatchResult(result *domain.BatchResult) *BatchRouteResponse {
	if result == nil {
		return nil
	}
	return &BatchRouteResponse{
		Entries:        result.Entries,
		BoundingPoints: result.BoundingPoints,
		Warnings:       result.Warnings,
		Meta:           result.Meta,
	}
}

package dto

import "github.com/routefare-microservice/internal/domain"

// GeocodeRequest - запрос на геокодирование названия места
type GeocodeRequest struct {
	Place string `json:"place" validate:"required,min=2"`
}

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// RouteRequest - запрос маршрута между двумя точками.
// Каждая сторона задаётся точкой или названием; точка имеет приоритет.
type RouteRequest struct {
	From      *Point `json:"from,omitempty"`
	FromLabel string `json:"from_label,omitempty"`
	To        *Point `json:"to,omitempty"`
	ToLabel   string `json:"to_label,omitempty"`
}

// QuoteRequest - запрос расчёта стоимости по известной дистанции.
// Нулевые base_fare/per_km_rate заменяются тарифами по умолчанию.
type QuoteRequest struct {
	DistanceKm float64 `json:"distance_km" validate:"min=0"`
	BaseFare   float64 `json:"base_fare" validate:"min=0"`
	PerKmRate  float64 `json:"per_km_rate" validate:"min=0"`
	Seats      int     `json:"seats" validate:"required,min=1,max=10"`
}

// EstimateFareRequest - запрос оценки стоимости по паре мест:
// сначала разрешается дистанция, затем считается тариф
type EstimateFareRequest struct {
	PickupLabel string  `json:"pickup_label,omitempty"`
	PickupPoint *Point  `json:"pickup_point,omitempty"`
	DropLabel   string  `json:"drop_label,omitempty"`
	DropPoint   *Point  `json:"drop_point,omitempty"`
	BaseFare    float64 `json:"base_fare" validate:"min=0"`
	PerKmRate   float64 `json:"per_km_rate" validate:"min=0"`
	Seats       int     `json:"seats" validate:"required,min=1,max=10"`
}

// LocationPairInput - пара подача/высадка во входном батче
type LocationPairInput struct {
	PickupLabel string `json:"pickup_label,omitempty"`
	PickupPoint *Point `json:"pickup_point,omitempty"`
	DropLabel   string `json:"drop_label,omitempty"`
	DropPoint   *Point `json:"drop_point,omitempty"`
}

// BatchRouteRequest - запрос на разрешение батча пар
type BatchRouteRequest struct {
	Pairs []LocationPairInput `json:"pairs" validate:"required,min=1,max=20,dive"`
}

// ToDomainPoint конвертирует опциональную точку DTO в domain
func (p *Point) ToDomainPoint() *domain.GeoPoint {
	if p == nil {
		return nil
	}
	return &domain.GeoPoint{Lat: p.Lat, Lon: p.Lon}
}

// ToDomainPair конвертирует входную пару в domain
func (in LocationPairInput) ToDomainPair() domain.LocationPair {
	return domain.LocationPair{
		PickupLabel: in.PickupLabel,
		PickupPoint: in.PickupPoint.ToDomainPoint(),
		DropLabel:   in.DropLabel,
		DropPoint:   in.DropPoint.ToDomainPoint(),
	}
}

// ToDomainPairs конвертирует батч входных пар в domain
func ToDomainPairs(inputs []LocationPairInput) []domain.LocationPair {
	pairs := make([]domain.LocationPair, len(inputs))
	for i, in := range inputs {
		pairs[i] = in.ToDomainPair()
	}
	return pairs
}

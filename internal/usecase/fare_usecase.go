package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/config"
	"github.com/routefare-microservice/internal/domain"
	"github.com/routefare-microservice/internal/domain/repository"
	"github.com/routefare-microservice/internal/pkg/errors"
	"github.com/routefare-microservice/internal/pkg/utils"
	"github.com/routefare-microservice/internal/usecase/dto"
)

// FareUseCase - use case для расчёта стоимости поездки.
// Сама формула чистая и без I/O; выданные расчёты журналируются best-effort.
type FareUseCase struct {
	routeUC   *RouteUseCase
	quoteRepo repository.QuoteRepository
	logger    *zap.Logger
	defaults  config.FareConfig
}

// NewFareUseCase - создание нового FareUseCase
func NewFareUseCase(
	routeUC *RouteUseCase,
	quoteRepo repository.QuoteRepository,
	logger *zap.Logger,
	defaults config.FareConfig,
) *FareUseCase {
	return &FareUseCase{
		routeUC:   routeUC,
		quoteRepo: quoteRepo,
		logger:    logger,
		defaults:  defaults,
	}
}

// Quote считает стоимость по известной дистанции:
// total = (base + rate * distance) * seats, округлено до 2 знаков.
// distance <= 0 не даёт дистанционного вклада.
func (uc *FareUseCase) Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if req.Seats < 1 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"seats": req.Seats,
		})
	}

	quote := uc.buildQuote(req.DistanceKm, req.BaseFare, req.PerKmRate, req.Seats)

	uc.saveQuote(ctx, quote)

	return &dto.QuoteResponse{Quote: *quote}, nil
}

// EstimateFare разрешает пару мест в дистанцию (distance-only вызов роутера,
// haversine при его недоступности) и считает тариф по ней
func (uc *FareUseCase) EstimateFare(ctx context.Context, req dto.EstimateFareRequest) (*dto.EstimateFareResponse, error) {
	if req.Seats < 1 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"seats": req.Seats,
		})
	}

	pickup, err := uc.routeUC.ResolvePoint(ctx, req.PickupLabel, req.PickupPoint.ToDomainPoint())
	if err != nil {
		return nil, err
	}

	drop, err := uc.routeUC.ResolvePoint(ctx, req.DropLabel, req.DropPoint.ToDomainPoint())
	if err != nil {
		return nil, err
	}

	route, err := uc.routeUC.EstimateDistance(ctx, *pickup, *drop)
	if err != nil {
		return nil, err
	}

	quote := uc.buildQuote(route.DistanceKm, req.BaseFare, req.PerKmRate, req.Seats)

	uc.saveQuote(ctx, quote)

	return &dto.EstimateFareResponse{
		Pickup:        *pickup,
		Drop:          *drop,
		DistanceKm:    route.DistanceKm,
		IsApproximate: route.IsApproximate,
		Quote:         *quote,
	}, nil
}

func (uc *FareUseCase) buildQuote(distanceKm, baseFare, perKmRate float64, seats int) *domain.FareQuote {
	if baseFare == 0 {
		baseFare = uc.defaults.DefaultBaseFare
	}
	if perKmRate == 0 {
		perKmRate = uc.defaults.DefaultPerKmRate
	}

	perSeat := baseFare
	if distanceKm > 0 {
		perSeat += perKmRate * distanceKm
	}

	return &domain.FareQuote{
		BaseAmount:  baseFare,
		PerKmRate:   perKmRate,
		DistanceKm:  distanceKm,
		SeatCount:   seats,
		TotalAmount: utils.RoundMoney(perSeat * float64(seats)),
		Currency:    uc.defaults.Currency,
	}
}

// saveQuote журналирует расчёт; сбой журнала не ломает ответ
func (uc *FareUseCase) saveQuote(ctx context.Context, quote *domain.FareQuote) {
	if uc.quoteRepo == nil {
		return
	}
	if err := uc.quoteRepo.SaveQuote(ctx, quote); err != nil {
		uc.logger.Warn("Failed to save fare quote", zap.Error(err))
	}
}

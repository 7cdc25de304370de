package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/config"
	"github.com/routefare-microservice/internal/domain"
	pkgerrors "github.com/routefare-microservice/internal/pkg/errors"
	"github.com/routefare-microservice/internal/usecase"
	"github.com/routefare-microservice/internal/usecase/dto"
)

func newFareUC(routing *MockRoutingRepository, geocode *MockGeocodingRepository, quotes *MockQuoteRepository) *usecase.FareUseCase {
	routeUC := usecase.NewRouteUseCase(routing, geocode, nil, zap.NewNop(), 50, time.Hour, time.Hour)
	return usecase.NewFareUseCase(routeUC, quotes, zap.NewNop(), config.FareConfig{
		DefaultBaseFare:  50,
		DefaultPerKmRate: 10,
		Currency:         "INR",
	})
}

func TestFareUseCase_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("standard fare formula", func(t *testing.T) {
		mockQuotes := &MockQuoteRepository{}
		uc := newFareUC(&MockRoutingRepository{}, &MockGeocodingRepository{}, mockQuotes)

		mockQuotes.On("SaveQuote", ctx, mock.Anything).Return(nil)

		// (50 + 10 * 100) * 2 = 2100
		resp, err := uc.Quote(ctx, dto.QuoteRequest{
			DistanceKm: 100,
			BaseFare:   50,
			PerKmRate:  10,
			Seats:      2,
		})
		assert.NoError(t, err)
		assert.Equal(t, 2100.0, resp.Quote.TotalAmount)
		assert.Equal(t, "INR", resp.Quote.Currency)
	})

	t.Run("zero distance charges base only", func(t *testing.T) {
		mockQuotes := &MockQuoteRepository{}
		uc := newFareUC(&MockRoutingRepository{}, &MockGeocodingRepository{}, mockQuotes)

		mockQuotes.On("SaveQuote", ctx, mock.Anything).Return(nil)

		resp, err := uc.Quote(ctx, dto.QuoteRequest{
			DistanceKm: 0,
			BaseFare:   50,
			PerKmRate:  10,
			Seats:      3,
		})
		assert.NoError(t, err)
		assert.Equal(t, 150.0, resp.Quote.TotalAmount)
	})

	t.Run("zero tariffs replaced by defaults", func(t *testing.T) {
		mockQuotes := &MockQuoteRepository{}
		uc := newFareUC(&MockRoutingRepository{}, &MockGeocodingRepository{}, mockQuotes)

		mockQuotes.On("SaveQuote", ctx, mock.Anything).Return(nil)

		resp, err := uc.Quote(ctx, dto.QuoteRequest{
			DistanceKm: 10,
			Seats:      1,
		})
		assert.NoError(t, err)
		assert.Equal(t, 50.0, resp.Quote.BaseAmount)
		assert.Equal(t, 10.0, resp.Quote.PerKmRate)
		assert.Equal(t, 150.0, resp.Quote.TotalAmount)
	})

	t.Run("total rounded to currency precision", func(t *testing.T) {
		mockQuotes := &MockQuoteRepository{}
		uc := newFareUC(&MockRoutingRepository{}, &MockGeocodingRepository{}, mockQuotes)

		mockQuotes.On("SaveQuote", ctx, mock.Anything).Return(nil)

		// (50 + 10 * 3.333) * 1 = 83.33
		resp, err := uc.Quote(ctx, dto.QuoteRequest{
			DistanceKm: 3.333,
			BaseFare:   50,
			PerKmRate:  10,
			Seats:      1,
		})
		assert.NoError(t, err)
		assert.Equal(t, 83.33, resp.Quote.TotalAmount)
	})

	t.Run("invalid seat count rejected", func(t *testing.T) {
		mockQuotes := &MockQuoteRepository{}
		uc := newFareUC(&MockRoutingRepository{}, &MockGeocodingRepository{}, mockQuotes)

		_, err := uc.Quote(ctx, dto.QuoteRequest{DistanceKm: 10, Seats: 0})
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidRequest)
		mockQuotes.AssertNotCalled(t, "SaveQuote")
	})

	t.Run("journal failure does not break quote", func(t *testing.T) {
		mockQuotes := &MockQuoteRepository{}
		uc := newFareUC(&MockRoutingRepository{}, &MockGeocodingRepository{}, mockQuotes)

		mockQuotes.On("SaveQuote", ctx, mock.Anything).Return(assert.AnError)

		resp, err := uc.Quote(ctx, dto.QuoteRequest{
			DistanceKm: 100,
			BaseFare:   50,
			PerKmRate:  10,
			Seats:      2,
		})
		assert.NoError(t, err)
		assert.Equal(t, 2100.0, resp.Quote.TotalAmount)
	})
}

func TestFareUseCase_EstimateFare(t *testing.T) {
	ctx := context.Background()
	pickup := domain.GeoPoint{Lat: 13.0827, Lon: 80.2707}
	drop := domain.GeoPoint{Lat: 12.9716, Lon: 77.5946}

	t.Run("resolves pair and quotes by road distance", func(t *testing.T) {
		mockRouting := &MockRoutingRepository{}
		mockGeocode := &MockGeocodingRepository{}
		mockQuotes := &MockQuoteRepository{}
		uc := newFareUC(mockRouting, mockGeocode, mockQuotes)

		mockGeocode.On("Geocode", ctx, "Chennai").Return(&pickup, nil)
		mockGeocode.On("Geocode", ctx, "Bengaluru").Return(&drop, nil)
		mockRouting.On("GetDistance", ctx, pickup, drop).Return(&domain.RouteResult{
			DistanceKm:      346.2,
			DurationMinutes: 338,
		}, nil)
		mockQuotes.On("SaveQuote", ctx, mock.Anything).Return(nil)

		resp, err := uc.EstimateFare(ctx, dto.EstimateFareRequest{
			PickupLabel: "Chennai",
			DropLabel:   "Bengaluru",
			BaseFare:    50,
			PerKmRate:   10,
			Seats:       2,
		})
		assert.NoError(t, err)
		assert.Equal(t, pickup, resp.Pickup)
		assert.Equal(t, drop, resp.Drop)
		assert.Equal(t, 346.2, resp.DistanceKm)
		assert.False(t, resp.IsApproximate)
		// (50 + 10 * 346.2) * 2 = 7024
		assert.Equal(t, 7024.0, resp.Quote.TotalAmount)
	})

	t.Run("unresolvable pickup fails the estimate", func(t *testing.T) {
		mockRouting := &MockRoutingRepository{}
		mockGeocode := &MockGeocodingRepository{}
		mockQuotes := &MockQuoteRepository{}
		uc := newFareUC(mockRouting, mockGeocode, mockQuotes)

		mockGeocode.On("Geocode", ctx, "Atlantis").Return(nil, pkgerrors.ErrLocationNotFound)

		_, err := uc.EstimateFare(ctx, dto.EstimateFareRequest{
			PickupLabel: "Atlantis",
			DropLabel:   "Bengaluru",
			Seats:       1,
		})
		assert.ErrorIs(t, err, pkgerrors.ErrLocationNotFound)
	})

	t.Run("approximate distance flagged in response", func(t *testing.T) {
		mockRouting := &MockRoutingRepository{}
		mockGeocode := &MockGeocodingRepository{}
		mockQuotes := &MockQuoteRepository{}
		uc := newFareUC(mockRouting, mockGeocode, mockQuotes)

		mockRouting.On("GetDistance", ctx, pickup, drop).Return(nil, assert.AnError)
		mockQuotes.On("SaveQuote", ctx, mock.Anything).Return(nil)

		resp, err := uc.EstimateFare(ctx, dto.EstimateFareRequest{
			PickupPoint: &dto.Point{Lat: pickup.Lat, Lon: pickup.Lon},
			DropPoint:   &dto.Point{Lat: drop.Lat, Lon: drop.Lon},
			Seats:       1,
		})
		assert.NoError(t, err)
		assert.True(t, resp.IsApproximate)
		assert.InDelta(t, 290, resp.DistanceKm, 10)
	})
}

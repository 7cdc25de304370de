package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/domain"
	"github.com/routefare-microservice/internal/domain/repository"
	"github.com/routefare-microservice/internal/pkg/errors"
)

// StatsUseCase - use case для статистики по журналу расчётов
type StatsUseCase struct {
	quoteRepo repository.QuoteRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewStatsUseCase - создание нового StatsUseCase
func NewStatsUseCase(
	quoteRepo repository.QuoteRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		quoteRepo: quoteRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// GetStatistics возвращает агрегаты, кеш-first
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	if uc.cacheRepo != nil {
		if cached, err := uc.cacheRepo.GetStats(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	if uc.quoteRepo == nil {
		return nil, errors.ErrDatabaseError
	}

	stats, err := uc.quoteRepo.GetStatistics(ctx)
	if err != nil {
		uc.logger.Error("Failed to load statistics", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache statistics", zap.Error(err))
		}
	}

	return stats, nil
}

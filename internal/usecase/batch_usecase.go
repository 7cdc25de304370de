package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/domain"
	"github.com/routefare-microservice/internal/domain/repository"
	"github.com/routefare-microservice/internal/pkg/errors"
)

// BatchUseCase - оркестратор разрешения батча пар подача/высадка.
// Пары обрабатываются последовательно в исходном порядке; сбой одной пары
// не прерывает батч - пара пропускается с предупреждением.
type BatchUseCase struct {
	routeUC      *RouteUseCase
	quoteRepo    repository.QuoteRepository
	streamRepo   repository.StreamRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	jobResultTTL time.Duration
}

// NewBatchUseCase - создание нового BatchUseCase
func NewBatchUseCase(
	routeUC *RouteUseCase,
	quoteRepo repository.QuoteRepository,
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	jobResultTTL time.Duration,
) *BatchUseCase {
	return &BatchUseCase{
		routeUC:      routeUC,
		quoteRepo:    quoteRepo,
		streamRepo:   streamRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		jobResultTTL: jobResultTTL,
	}
}

// ResolveBatch разрешает пары по шагам: точка подачи, точка высадки, маршрут.
// Неразрешимая сторона ведёт к пропуску всей пары; Entries сохраняют порядок
// входа. Пустой вход - пустой результат без ошибки; непустой вход, в котором
// не выжила ни одна пара, - ErrRouteBatchEmpty.
func (uc *BatchUseCase) ResolveBatch(ctx context.Context, pairs []domain.LocationPair) (*domain.BatchResult, error) {
	result := &domain.BatchResult{
		Entries:        make([]domain.BatchEntry, 0, len(pairs)),
		BoundingPoints: make([]domain.GeoPoint, 0, len(pairs)*2),
		Meta: domain.BatchMeta{
			TotalPairs: len(pairs),
		},
	}

	if len(pairs) == 0 {
		return result, nil
	}

	uc.logger.Info("ResolveBatch started", zap.Int("total_pairs", len(pairs)))

	for i, pair := range pairs {
		pickup, err := uc.routeUC.ResolvePoint(ctx, pair.PickupLabel, pair.PickupPoint)
		if err != nil {
			uc.skipPair(result, i, "pickup", pair.PickupLabel, err)
			continue
		}

		drop, err := uc.routeUC.ResolvePoint(ctx, pair.DropLabel, pair.DropPoint)
		if err != nil {
			uc.skipPair(result, i, "drop", pair.DropLabel, err)
			continue
		}

		route, err := uc.routeUC.Route(ctx, *pickup, *drop)
		if err != nil {
			uc.skipPair(result, i, "route", "", err)
			continue
		}

		result.Entries = append(result.Entries, domain.BatchEntry{
			Index:  i,
			Pair:   pair,
			Pickup: *pickup,
			Drop:   *drop,
			Route:  *route,
		})
		result.BoundingPoints = append(result.BoundingPoints, *pickup, *drop)

		result.Meta.ResolvedPairs++
		if route.IsApproximate {
			result.Meta.ApproximateRoutes++
		}
	}

	uc.logger.Info("ResolveBatch completed",
		zap.Int("total", result.Meta.TotalPairs),
		zap.Int("resolved", result.Meta.ResolvedPairs),
		zap.Int("skipped", result.Meta.SkippedPairs),
		zap.Int("approximate", result.Meta.ApproximateRoutes))

	if len(result.Entries) == 0 {
		return nil, errors.ErrRouteBatchEmpty.WithDetails(map[string]interface{}{
			"warnings": result.Warnings,
		})
	}

	uc.saveResolution(ctx, result)

	return result, nil
}

// SubmitJob публикует задание на асинхронное разрешение батча
func (uc *BatchUseCase) SubmitJob(ctx context.Context, pairs []domain.LocationPair) (uuid.UUID, error) {
	if uc.streamRepo == nil {
		return uuid.Nil, errors.ErrInternalServer
	}

	event := domain.RouteResolveEvent{
		JobID: uuid.New(),
		Pairs: pairs,
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamRouteResolve, event); err != nil {
		uc.logger.Error("Failed to publish resolve job", zap.Error(err))
		return uuid.Nil, errors.ErrInternalServer
	}

	uc.logger.Info("Resolve job submitted",
		zap.String("job_id", event.JobID.String()),
		zap.Int("pairs", len(pairs)))

	return event.JobID, nil
}

// GetJobResult возвращает результат асинхронного задания из кеша
func (uc *BatchUseCase) GetJobResult(ctx context.Context, jobID uuid.UUID) (*domain.RouteResolveDoneEvent, error) {
	done, err := uc.cacheRepo.GetJobResult(ctx, jobID)
	if err != nil {
		return nil, errors.ErrCacheError
	}
	if done == nil {
		return nil, errors.ErrJobNotFound
	}
	return done, nil
}

// ProcessJob выполняет задание из стрима: разрешает батч, сохраняет
// результат по job id и публикует done-событие. Результаты привязаны к
// job id, поэтому устаревший ответ не может затереть более новый.
func (uc *BatchUseCase) ProcessJob(ctx context.Context, event domain.RouteResolveEvent) error {
	done := domain.RouteResolveDoneEvent{JobID: event.JobID}

	result, err := uc.ResolveBatch(ctx, event.Pairs)
	if err != nil {
		done.Error = err.Error()
	} else {
		done.Result = result
	}

	if err := uc.cacheRepo.SetJobResult(ctx, event.JobID, &done, uc.jobResultTTL); err != nil {
		uc.logger.Error("Failed to store job result",
			zap.String("job_id", event.JobID.String()),
			zap.Error(err))
		return err
	}

	if uc.streamRepo != nil {
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamRouteDone, done); err != nil {
			uc.logger.Error("Failed to publish done event",
				zap.String("job_id", event.JobID.String()),
				zap.Error(err))
			// результат уже сохранён - задание считаем выполненным
		}
	}

	return nil
}

func (uc *BatchUseCase) skipPair(result *domain.BatchResult, index int, side, label string, err error) {
	warning := fmt.Sprintf("pair %d: %s could not be resolved", index+1, side)
	if label != "" {
		warning = fmt.Sprintf("pair %d: %s %q could not be resolved", index+1, side, label)
	}

	uc.logger.Warn("Skipping location pair",
		zap.Int("pair_index", index),
		zap.String("side", side),
		zap.String("label", label),
		zap.Error(err))

	result.Warnings = append(result.Warnings, warning)
	result.Meta.SkippedPairs++
}

// saveResolution журналирует итог батча; сбой журнала не ломает ответ
func (uc *BatchUseCase) saveResolution(ctx context.Context, result *domain.BatchResult) {
	if uc.quoteRepo == nil {
		return
	}
	if err := uc.quoteRepo.SaveResolution(ctx, result); err != nil {
		uc.logger.Warn("Failed to save route resolution", zap.Error(err))
	}
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/routefare-microservice/internal/domain"
	"github.com/routefare-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// geocodeKey нормализует название места в ключ кеша
func geocodeKey(place string) string {
	return "geo:place:" + strings.ToLower(strings.Join(strings.Fields(place), " "))
}

// routeKey строит ключ по паре координат; 4 знака (~11 м) достаточно
// чтобы близкие запросы попадали в один ключ
func routeKey(from, to domain.GeoPoint) string {
	return fmt.Sprintf("route:%.4f,%.4f:%.4f,%.4f", from.Lat, from.Lon, to.Lat, to.Lon)
}

// GetGeocodedPoint получает геокодированную точку из кеша
func (r *cacheRepository) GetGeocodedPoint(ctx context.Context, place string) (*domain.GeoPoint, error) {
	data, err := r.Get(ctx, geocodeKey(place))
	if err != nil || data == nil {
		return nil, err
	}

	var point domain.GeoPoint
	if err := json.Unmarshal(data, &point); err != nil {
		r.logger.Error("Failed to unmarshal geocoded point", zap.Error(err))
		return nil, fmt.Errorf("unmarshal geocoded point: %w", err)
	}

	return &point, nil
}

// SetGeocodedPoint сохраняет геокодированную точку в кеше
func (r *cacheRepository) SetGeocodedPoint(ctx context.Context, place string, point *domain.GeoPoint, ttl time.Duration) error {
	data, err := json.Marshal(point)
	if err != nil {
		return fmt.Errorf("marshal geocoded point: %w", err)
	}

	return r.Set(ctx, geocodeKey(place), data, ttl)
}

// GetRoute получает маршрут между двумя точками из кеша
func (r *cacheRepository) GetRoute(ctx context.Context, from, to domain.GeoPoint) (*domain.RouteResult, error) {
	data, err := r.Get(ctx, routeKey(from, to))
	if err != nil || data == nil {
		return nil, err
	}

	var route domain.RouteResult
	if err := json.Unmarshal(data, &route); err != nil {
		r.logger.Error("Failed to unmarshal route", zap.Error(err))
		return nil, fmt.Errorf("unmarshal route: %w", err)
	}

	return &route, nil
}

// SetRoute сохраняет маршрут в кеше
func (r *cacheRepository) SetRoute(ctx context.Context, from, to domain.GeoPoint, route *domain.RouteResult, ttl time.Duration) error {
	data, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("marshal route: %w", err)
	}

	return r.Set(ctx, routeKey(from, to), data, ttl)
}

// GetJobResult получает результат асинхронного задания
func (r *cacheRepository) GetJobResult(ctx context.Context, jobID uuid.UUID) (*domain.RouteResolveDoneEvent, error) {
	data, err := r.Get(ctx, "job:route:"+jobID.String())
	if err != nil || data == nil {
		return nil, err
	}

	var result domain.RouteResolveDoneEvent
	if err := json.Unmarshal(data, &result); err != nil {
		r.logger.Error("Failed to unmarshal job result", zap.Error(err))
		return nil, fmt.Errorf("unmarshal job result: %w", err)
	}

	return &result, nil
}

// SetJobResult сохраняет результат асинхронного задания
func (r *cacheRepository) SetJobResult(ctx context.Context, jobID uuid.UUID, result *domain.RouteResolveDoneEvent, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal job result: %w", err)
	}

	return r.Set(ctx, "job:route:"+jobID.String(), data, ttl)
}

// GetStats получает статистику из кеша
func (r *cacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	data, err := r.Get(ctx, "stats:current")
	if err != nil || data == nil {
		return nil, err
	}

	var stats domain.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Error("Failed to unmarshal stats from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}

	return &stats, nil
}

// SetStats сохраняет статистику в кеше
func (r *cacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		r.logger.Error("Failed to marshal stats", zap.Error(err))
		return fmt.Errorf("marshal stats: %w", err)
	}

	return r.Set(ctx, "stats:current", data, ttl)
}

package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/routefare-microservice/internal/config"
	"github.com/routefare-microservice/internal/domain"
	"github.com/routefare-microservice/internal/domain/repository"
	"github.com/routefare-microservice/internal/pkg/utils"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
	logger     *zap.Logger
}

// NewOSRMClient создает новый клиент для OSRM API.
// Таймаут клиента ограничивает основной запрос; при его срабатывании
// вызывающая сторона уходит в straight-line fallback.
func NewOSRMClient(cfg *config.RouterConfig, logger *zap.Logger) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		profile: cfg.Profile,
		logger:  logger,
	}
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // lng,lat pairs
		} `json:"geometry"`
	} `json:"routes"`
}

// GetRoute возвращает дорожный маршрут с полной геометрией
func (c *client) GetRoute(ctx context.Context, from, to domain.GeoPoint) (*domain.RouteResult, error) {
	return c.request(ctx, from, to, true)
}

// GetDistance возвращает только дистанцию и длительность (overview=false)
func (c *client) GetDistance(ctx context.Context, from, to domain.GeoPoint) (*domain.RouteResult, error) {
	return c.request(ctx, from, to, false)
}

func (c *client) request(ctx context.Context, from, to domain.GeoPoint, withGeometry bool) (*domain.RouteResult, error) {
	// OSRM ожидает порядок lng,lat
	url := fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f",
		c.baseURL, c.profile,
		from.Lon, from.Lat,
		to.Lon, to.Lat,
	)
	if withGeometry {
		url += "?overview=full&geometries=geojson"
	} else {
		url += "?overview=false"
	}

	c.logger.Debug("Calling OSRM API",
		zap.String("url", url),
		zap.Bool("with_geometry", withGeometry))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("OSRM API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("osrm API error: status %d", resp.StatusCode)
	}

	var routeResp routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if routeResp.Code != "Ok" || len(routeResp.Routes) == 0 {
		c.logger.Warn("OSRM API returned no routes",
			zap.String("code", routeResp.Code))
		return nil, fmt.Errorf("osrm API returned code: %s", routeResp.Code)
	}

	route := routeResp.Routes[0]

	result := &domain.RouteResult{
		DistanceKm:      utils.RoundKm(route.Distance / 1000),
		DurationMinutes: int(math.Round(route.Duration / 60)),
		IsApproximate:   false,
	}

	if withGeometry {
		// Нормализуем lng,lat -> GeoPoint на границе провайдера
		path := make([]domain.GeoPoint, 0, len(route.Geometry.Coordinates))
		for _, pair := range route.Geometry.Coordinates {
			if len(pair) < 2 {
				continue
			}
			path = append(path, domain.GeoPoint{Lat: pair[1], Lon: pair[0]})
		}
		result.Path = path
	}

	c.logger.Debug("OSRM route fetched",
		zap.Float64("distance_km", result.DistanceKm),
		zap.Int("duration_minutes", result.DurationMinutes),
		zap.Int("path_points", len(result.Path)))

	return result, nil
}

package photon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/routefare-microservice/internal/config"
	"github.com/routefare-microservice/internal/domain"
	"github.com/routefare-microservice/internal/domain/repository"
	pkgerrors "github.com/routefare-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	bias       domain.RegionBias
	logger     *zap.Logger
}

// NewPhotonClient создает новый клиент для Photon API
func NewPhotonClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocodingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		bias: domain.RegionBias{
			CountryHint: cfg.CountryHint,
			BiasLat:     cfg.BiasLat,
			BiasLon:     cfg.BiasLon,
			Bounds: domain.BoundingBox{
				MinLat: cfg.MinLat,
				MaxLat: cfg.MaxLat,
				MinLon: cfg.MinLon,
				MaxLon: cfg.MaxLon,
			},
		},
		logger: logger,
	}
}

// featureCollection - GeoJSON-подобный ответ Photon.
// Координаты приходят в порядке lng,lat и нормализуются на этой границе.
type featureCollection struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

// Geocode разрешает название места в координаты.
// Одна попытка, без ретраев. Любой сбой (сеть, не-2xx, пустой ответ,
// точка вне региона) схлопывается в ErrLocationNotFound, чтобы вызывающая
// сторона могла пропустить пару вместо аварии.
func (c *client) Geocode(ctx context.Context, place string) (*domain.GeoPoint, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, fmt.Errorf("place name cannot be empty")
	}

	query := place
	if c.bias.CountryHint != "" {
		query = place + " " + c.bias.CountryHint
	}

	reqURL := fmt.Sprintf("%s/api/?q=%s&limit=1&lat=%g&lon=%g",
		c.baseURL,
		url.QueryEscape(query),
		c.bias.BiasLat,
		c.bias.BiasLon,
	)

	c.logger.Debug("Calling Photon API",
		zap.String("place", place),
		zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, pkgerrors.ErrLocationNotFound
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Photon request failed",
			zap.String("place", place),
			zap.Error(err))
		return nil, pkgerrors.ErrLocationNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Photon API returned error",
			zap.String("place", place),
			zap.Int("status_code", resp.StatusCode))
		return nil, pkgerrors.ErrLocationNotFound
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		c.logger.Warn("Failed to decode Photon response",
			zap.String("place", place),
			zap.Error(err))
		return nil, pkgerrors.ErrLocationNotFound
	}

	if len(fc.Features) == 0 || len(fc.Features[0].Geometry.Coordinates) < 2 {
		c.logger.Warn("Photon returned no results", zap.String("place", place))
		return nil, pkgerrors.ErrLocationNotFound
	}

	// Photon отдаёт lng,lat
	coords := fc.Features[0].Geometry.Coordinates
	point := domain.GeoPoint{Lat: coords[1], Lon: coords[0]}

	// Проверка правдоподобия: одноимённое место в другой стране отбрасываем
	if !c.bias.Bounds.Contains(point) {
		c.logger.Warn("Geocoded point outside plausible region",
			zap.String("place", place),
			zap.Float64("lat", point.Lat),
			zap.Float64("lon", point.Lon))
		return nil, pkgerrors.ErrLocationNotFound
	}

	c.logger.Debug("Photon geocode successful",
		zap.String("place", place),
		zap.Float64("lat", point.Lat),
		zap.Float64("lon", point.Lon),
		zap.Duration("took", time.Since(start)))

	return &point, nil
}

package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/config"
	"github.com/routefare-microservice/internal/domain"
)

func testConfig(baseURL string) *config.RouterConfig {
	return &config.RouterConfig{
		BaseURL:        baseURL,
		Profile:        "driving",
		RequestTimeout: 3000 * time.Millisecond,
	}
}

func TestClient_GetRoute(t *testing.T) {
	logger := zap.NewNop()
	from := domain.GeoPoint{Lat: 13.0827, Lon: 80.2707}
	to := domain.GeoPoint{Lat: 12.9716, Lon: 77.5946}

	t.Run("successful route", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// координаты в URL идут в порядке lng,lat
			assert.True(t, strings.HasPrefix(r.URL.Path, "/route/v1/driving/80.270700,13.082700;77.594600,12.971600"))
			assert.Equal(t, "full", r.URL.Query().Get("overview"))
			assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"code": "Ok",
				"routes": [{
					"distance": 346153.0,
					"duration": 20280.0,
					"geometry": {"coordinates": [[80.2707,13.0827],[78.9,13.0],[77.5946,12.9716]]}
				}]
			}`))
		}))
		defer server.Close()

		client := NewOSRMClient(testConfig(server.URL), logger)

		route, err := client.GetRoute(context.Background(), from, to)
		require.NoError(t, err)
		// 346153 м -> 346.2 км, 20280 с -> 338 мин
		assert.Equal(t, 346.2, route.DistanceKm)
		assert.Equal(t, 338, route.DurationMinutes)
		assert.False(t, route.IsApproximate)
		// lng,lat нормализованы в GeoPoint
		require.Len(t, route.Path, 3)
		assert.Equal(t, domain.GeoPoint{Lat: 13.0827, Lon: 80.2707}, route.Path[0])
		assert.Equal(t, domain.GeoPoint{Lat: 12.9716, Lon: 77.5946}, route.Path[2])
	})

	t.Run("non-ok code is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
		}))
		defer server.Close()

		client := NewOSRMClient(testConfig(server.URL), logger)

		_, err := client.GetRoute(context.Background(), from, to)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "NoRoute")
	})

	t.Run("http error is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewOSRMClient(testConfig(server.URL), logger)

		_, err := client.GetRoute(context.Background(), from, to)
		assert.Error(t, err)
	})

	t.Run("slow provider times out", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"code":"Ok","routes":[]}`))
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.RequestTimeout = 50 * time.Millisecond
		client := NewOSRMClient(cfg, logger)

		_, err := client.GetRoute(context.Background(), from, to)
		assert.Error(t, err)
	})
}

func TestClient_GetDistance(t *testing.T) {
	logger := zap.NewNop()
	from := domain.GeoPoint{Lat: 13.0827, Lon: 80.2707}
	to := domain.GeoPoint{Lat: 12.9716, Lon: 77.5946}

	t.Run("distance without geometry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "false", r.URL.Query().Get("overview"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"code": "Ok", "routes": [{"distance": 346153.0, "duration": 20280.0}]}`))
		}))
		defer server.Close()

		client := NewOSRMClient(testConfig(server.URL), logger)

		route, err := client.GetDistance(context.Background(), from, to)
		require.NoError(t, err)
		assert.Equal(t, 346.2, route.DistanceKm)
		assert.Equal(t, 338, route.DurationMinutes)
		assert.Empty(t, route.Path)
	})
}

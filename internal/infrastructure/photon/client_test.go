package photon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/routefare-microservice/internal/config"
	pkgerrors "github.com/routefare-microservice/internal/pkg/errors"
)

func testConfig(baseURL string) *config.GeocoderConfig {
	return &config.GeocoderConfig{
		BaseURL:        baseURL,
		CountryHint:    "India",
		BiasLat:        20,
		BiasLon:        78,
		MinLat:         6,
		MaxLat:         37,
		MinLon:         68,
		MaxLon:         97,
		RequestTimeout: 5 * time.Second,
	}
}

func TestClient_Geocode(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful geocode", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Chennai India", r.URL.Query().Get("q"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			assert.Equal(t, "20", r.URL.Query().Get("lat"))
			assert.Equal(t, "78", r.URL.Query().Get("lon"))

			w.Header().Set("Content-Type", "application/json")
			// Photon отдаёт координаты в порядке lng,lat
			w.Write([]byte(`{"features":[{"geometry":{"coordinates":[80.2707,13.0827]},"properties":{"name":"Chennai","country":"India"}}]}`))
		}))
		defer server.Close()

		client := NewPhotonClient(testConfig(server.URL), logger)

		point, err := client.Geocode(context.Background(), "Chennai")
		require.NoError(t, err)
		assert.Equal(t, 13.0827, point.Lat)
		assert.Equal(t, 80.2707, point.Lon)
	})

	t.Run("result outside region rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			// Лондон - вне прямоугольника правдоподобия
			w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-0.1276,51.5072]},"properties":{"name":"London","country":"United Kingdom"}}]}`))
		}))
		defer server.Close()

		client := NewPhotonClient(testConfig(server.URL), logger)

		point, err := client.Geocode(context.Background(), "London")
		assert.ErrorIs(t, err, pkgerrors.ErrLocationNotFound)
		assert.Nil(t, point)
	})

	t.Run("empty features is not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"features":[]}`))
		}))
		defer server.Close()

		client := NewPhotonClient(testConfig(server.URL), logger)

		_, err := client.Geocode(context.Background(), "Nowhereville")
		assert.ErrorIs(t, err, pkgerrors.ErrLocationNotFound)
	})

	t.Run("api error collapses to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewPhotonClient(testConfig(server.URL), logger)

		_, err := client.Geocode(context.Background(), "Chennai")
		assert.ErrorIs(t, err, pkgerrors.ErrLocationNotFound)
	})

	t.Run("malformed json collapses to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewPhotonClient(testConfig(server.URL), logger)

		_, err := client.Geocode(context.Background(), "Chennai")
		assert.ErrorIs(t, err, pkgerrors.ErrLocationNotFound)
	})

	t.Run("empty place rejected", func(t *testing.T) {
		client := NewPhotonClient(testConfig("http://localhost:1"), logger)

		_, err := client.Geocode(context.Background(), "   ")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

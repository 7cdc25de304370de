package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Geocoder GeocoderConfig
	Router   RouterConfig
	Fare     FareConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeocodeCacheTTL time.Duration
	RouteCacheTTL   time.Duration
	StatsCacheTTL   time.Duration
	JobResultTTL    time.Duration
}

type LogConfig struct {
	Level string
}

// GeocoderConfig - настройки Photon геокодера и региональной проверки
type GeocoderConfig struct {
	BaseURL        string
	CountryHint    string
	BiasLat        float64
	BiasLon        float64
	MinLat         float64
	MaxLat         float64
	MinLon         float64
	MaxLon         float64
	RequestTimeout time.Duration
}

// RouterConfig - настройки OSRM роутера и straight-line fallback
type RouterConfig struct {
	BaseURL          string
	Profile          string
	RequestTimeout   time.Duration
	FallbackSpeedKmh float64
}

// FareConfig - тарифы по умолчанию, если поездка не задаёт свои
type FareConfig struct {
	DefaultBaseFare  float64
	DefaultPerKmRate float64
	Currency         string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL: time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
			RouteCacheTTL:   time.Duration(viper.GetInt("ROUTE_CACHE_TTL")) * time.Second,
			StatsCacheTTL:   time.Duration(viper.GetInt("STATS_CACHE_TTL")) * time.Second,
			JobResultTTL:    time.Duration(viper.GetInt("JOB_RESULT_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:        viper.GetString("GEOCODER_BASE_URL"),
			CountryHint:    viper.GetString("GEOCODER_COUNTRY_HINT"),
			BiasLat:        viper.GetFloat64("GEOCODER_BIAS_LAT"),
			BiasLon:        viper.GetFloat64("GEOCODER_BIAS_LON"),
			MinLat:         viper.GetFloat64("GEOCODER_MIN_LAT"),
			MaxLat:         viper.GetFloat64("GEOCODER_MAX_LAT"),
			MinLon:         viper.GetFloat64("GEOCODER_MIN_LON"),
			MaxLon:         viper.GetFloat64("GEOCODER_MAX_LON"),
			RequestTimeout: time.Duration(viper.GetInt("GEOCODER_TIMEOUT")) * time.Second,
		},
		Router: RouterConfig{
			BaseURL:          viper.GetString("ROUTER_BASE_URL"),
			Profile:          viper.GetString("ROUTER_PROFILE"),
			RequestTimeout:   time.Duration(viper.GetInt("ROUTER_TIMEOUT_MS")) * time.Millisecond,
			FallbackSpeedKmh: viper.GetFloat64("ROUTER_FALLBACK_SPEED_KMH"),
		},
		Fare: FareConfig{
			DefaultBaseFare:  viper.GetFloat64("FARE_DEFAULT_BASE"),
			DefaultPerKmRate: viper.GetFloat64("FARE_DEFAULT_PER_KM"),
			Currency:         viper.GetString("FARE_CURRENCY"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.GeocodeCacheTTL == 0 {
		cfg.Cache.GeocodeCacheTTL = 24 * time.Hour
	}
	if cfg.Cache.RouteCacheTTL == 0 {
		cfg.Cache.RouteCacheTTL = time.Hour
	}
	if cfg.Cache.StatsCacheTTL == 0 {
		cfg.Cache.StatsCacheTTL = 5 * time.Minute
	}
	if cfg.Cache.JobResultTTL == 0 {
		cfg.Cache.JobResultTTL = time.Hour
	}
	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://photon.komoot.io"
	}
	// Region bias по умолчанию - материковая Индия (центр ~20,78)
	if cfg.Geocoder.CountryHint == "" {
		cfg.Geocoder.CountryHint = "India"
	}
	if cfg.Geocoder.BiasLat == 0 {
		cfg.Geocoder.BiasLat = 20
	}
	if cfg.Geocoder.BiasLon == 0 {
		cfg.Geocoder.BiasLon = 78
	}
	if cfg.Geocoder.MinLat == 0 && cfg.Geocoder.MaxLat == 0 {
		cfg.Geocoder.MinLat = 6
		cfg.Geocoder.MaxLat = 37
		cfg.Geocoder.MinLon = 68
		cfg.Geocoder.MaxLon = 97
	}
	if cfg.Geocoder.RequestTimeout == 0 {
		cfg.Geocoder.RequestTimeout = 5 * time.Second
	}
	if cfg.Router.BaseURL == "" {
		cfg.Router.BaseURL = "https://router.project-osrm.org"
	}
	if cfg.Router.Profile == "" {
		cfg.Router.Profile = "driving"
	}
	if cfg.Router.RequestTimeout == 0 {
		cfg.Router.RequestTimeout = 3000 * time.Millisecond
	}
	if cfg.Router.FallbackSpeedKmh == 0 {
		cfg.Router.FallbackSpeedKmh = 50
	}
	if cfg.Fare.DefaultBaseFare == 0 {
		cfg.Fare.DefaultBaseFare = 50
	}
	if cfg.Fare.DefaultPerKmRate == 0 {
		cfg.Fare.DefaultPerKmRate = 10
	}
	if cfg.Fare.Currency == "" {
		cfg.Fare.Currency = "INR"
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "route-resolve-workers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

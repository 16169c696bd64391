package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelvins/geocoder"
)

type AppConfig struct {
	Port string

	// Location the summary is built for.
	Latitude  float64
	Longitude float64

	// Optional city lookup, used only when no explicit coordinates are set.
	City           string
	Country        string
	GeocoderAPIKey string

	// Upstream forecast model passed to Open-Meteo.
	ForecastModel string

	// KNMI open-data platform credentials and dataset coordinates.
	// An empty API key disables the warnings path entirely.
	KNMIAPIKey         string
	KNMIDataset        string
	KNMIDatasetVersion string

	// CacheTTL is the forecast freshness window.
	CacheTTL time.Duration

	// UpstreamTimeout bounds every outbound provider call.
	UpstreamTimeout time.Duration

	// WarmInterval enables the periodic cache warmer when > 0.
	WarmInterval time.Duration

	coordsExplicit bool
}

// Default coordinates: Gouda, NL. Overridden via LATITUDE/LONGITUDE or
// the city geocoding path.
const (
	defaultLatitude  = 52.0167
	defaultLongitude = 4.7083
)

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "err", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.coordsExplicit = os.Getenv("LATITUDE") != "" && os.Getenv("LONGITUDE") != ""
	lat, err := getenvFloat("LATITUDE", defaultLatitude)
	if err != nil {
		return nil, fmt.Errorf("invalid LATITUDE: %w", err)
	}
	lon, err := getenvFloat("LONGITUDE", defaultLongitude)
	if err != nil {
		return nil, fmt.Errorf("invalid LONGITUDE: %w", err)
	}
	cfg.Latitude = lat
	cfg.Longitude = lon

	cfg.City = os.Getenv("LOCATION_CITY")
	cfg.Country = os.Getenv("LOCATION_COUNTRY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	cfg.ForecastModel = getenvDefault("FORECAST_MODEL", "knmi_seamless")

	cfg.KNMIAPIKey = os.Getenv("KNMI_API_KEY")
	cfg.KNMIDataset = getenvDefault("KNMI_DATASET", "waarschuwingen_nederland_48h")
	cfg.KNMIDatasetVersion = getenvDefault("KNMI_DATASET_VERSION", "1.0")

	ttl, err := getenvDuration("FORECAST_CACHE_TTL", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	timeout, err := getenvDuration("UPSTREAM_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	cfg.UpstreamTimeout = timeout

	warm, err := getenvDuration("WARM_INTERVAL", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}
	cfg.WarmInterval = warm

	return cfg, nil
}

// ResolveCoordinates geocodes the configured city when no explicit coordinates
// were provided. Without a city or a geocoding key the defaults stand.
func (c *AppConfig) ResolveCoordinates() error {
	if c.coordsExplicit || c.City == "" || c.GeocoderAPIKey == "" {
		return nil
	}

	geocoder.ApiKey = c.GeocoderAPIKey
	loc, err := geocoder.Geocoding(geocoder.Address{
		City:    c.City,
		Country: c.Country,
	})
	if err != nil {
		return fmt.Errorf("geocode %q: %w", c.City, err)
	}

	c.Latitude = loc.Latitude
	c.Longitude = loc.Longitude
	slog.Info("resolved location", "city", c.City, "lat", c.Latitude, "lon", c.Longitude)
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}

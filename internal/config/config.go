// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the timeclock service.
type Config struct {
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Geo         GeoConfig
	Report      ReportConfig
	Bootstrap   BootstrapConfig
}

type HTTPConfig struct {
	Addr string
}

type DatabaseConfig struct {
	// Driver is either "sqlite" or "postgres".
	Driver string
	DSN    string
}

type GeoConfig struct {
	// BaseURL of the IP geolocation provider (ipwho.is compatible).
	BaseURL string
	Timeout time.Duration
}

type ReportConfig struct {
	CacheTTL time.Duration
}

type BootstrapConfig struct {
	// SeedDemoEntries fills an empty database with a month of demo
	// punches for local development.
	SeedDemoEntries bool
	DemoEmployee    string
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from the environment. Outside production a
// local .env file is honored when present.
func Load() (Config, error) {
	env := getenv("PONTO_ENV", "development")
	if env != "production" {
		_ = godotenv.Load()
		env = getenv("PONTO_ENV", env)
	}

	cfg := Config{
		Environment: env,
		HTTP: HTTPConfig{
			Addr: getenv("PONTO_HTTP_ADDR", ":8080"),
		},
		Database: DatabaseConfig{
			Driver: getenv("PONTO_DB_DRIVER", "sqlite"),
			DSN:    getenv("PONTO_DB_DSN", "file:ponto.db?_pragma=busy_timeout(5000)"),
		},
		Geo: GeoConfig{
			BaseURL: getenv("PONTO_GEO_BASE_URL", "https://ipwho.is"),
			Timeout: getduration("PONTO_GEO_TIMEOUT", 3*time.Second),
		},
		Report: ReportConfig{
			CacheTTL: getduration("PONTO_REPORT_CACHE_TTL", 5*time.Minute),
		},
		Bootstrap: BootstrapConfig{
			SeedDemoEntries: getbool("PONTO_SEED_DEMO_ENTRIES", false),
			DemoEmployee:    getenv("PONTO_DEMO_EMPLOYEE", "thalia"),
		},
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getbool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB       DBConfig
	Server   ServerConfig
	Upstream UpstreamConfig
	Search   SearchConfig
	Auth     AuthConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		// SQLite in-memory database
		if c.Name != "" && c.Name != "agricheck" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	// PostgreSQL connection string
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	// SuggestRatePerSec caps how often the suggest endpoint may hit the
	// upstream geocoder; SuggestBurst is the token-bucket depth.
	SuggestRatePerSec float64
	SuggestBurst      int
}

// UpstreamConfig holds the remote geocoding and weather endpoints
type UpstreamConfig struct {
	GeocodingBaseURL string
	WeatherBaseURL   string
	APIKey           string
	Timeout          time.Duration
}

// SearchConfig holds tuning for the incremental search engine
type SearchConfig struct {
	DebounceInterval time.Duration
	SuggestLimit     int
	FallbackCity     string
}

// AuthConfig holds token settings
type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
	ResetTokenTTL  time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "agricheck"),
			Password: getEnv("DB_PASSWORD", "agricheck_password"),
			Name:     getEnv("DB_NAME", "agricheck"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port:              getEnv("APP_PORT", "8080"),
			SuggestRatePerSec: getEnvAsFloat("SUGGEST_RATE_PER_SEC", 10),
			SuggestBurst:      getEnvAsInt("SUGGEST_BURST", 20),
		},
		Upstream: UpstreamConfig{
			GeocodingBaseURL: getEnv("GEOCODING_BASE_URL", "https://api.openweathermap.org/geo/1.0/direct"),
			WeatherBaseURL:   getEnv("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
			APIKey:           getEnv("UPSTREAM_API_KEY", ""),
			Timeout:          getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		},
		Search: SearchConfig{
			DebounceInterval: getEnvAsDuration("SEARCH_DEBOUNCE_INTERVAL", 350*time.Millisecond),
			SuggestLimit:     getEnvAsInt("SEARCH_SUGGEST_LIMIT", 6),
			FallbackCity:     getEnv("SEARCH_FALLBACK_CITY", "Manila"),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
			AccessTokenTTL: getEnvAsDuration("ACCESS_TOKEN_TTL", 60*time.Minute),
			ResetTokenTTL:  getEnvAsDuration("RESET_TOKEN_TTL", 30*time.Minute),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

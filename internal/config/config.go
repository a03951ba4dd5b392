package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name        string
	Version     string
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// EngineConfig holds the aggregation/settlement engine defaults.
// Every value here is passed into engine calls as part of the
// parameter object; the engine itself never reads the environment.
type EngineConfig struct {
	// ExtraVenueCode marks the company excluded from "all companies"
	// totals unless the include flag is set.
	ExtraVenueCode string
	// DefaultBasePerShift applies when no salary rule matches a
	// (company code, shift type) pair.
	DefaultBasePerShift float64
	// ProjectionFactor is the naive end-of-period balance
	// extrapolation factor (net * (1 + k)).
	ProjectionFactor float64
	// Holt smoothing defaults for the forecaster.
	ForecastAlpha float64
	ForecastBeta  float64
	ForecastClamp float64
}

func Load() (*Config, error) {
	// A missing .env is fine in containerized deploys where the
	// environment is injected directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "venuedesk_finance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:        getEnv("APP_NAME", "venuedesk-finance"),
		Version:     getEnv("APP_VERSION", "v1.0.0"),
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// Engine configuration
	defaultBase, err := getEnvFloat("ENGINE_DEFAULT_BASE_PER_SHIFT", 8000)
	if err != nil {
		return nil, err
	}
	projection, err := getEnvFloat("ENGINE_PROJECTION_FACTOR", 0.10)
	if err != nil {
		return nil, err
	}
	alpha, err := getEnvFloat("ENGINE_FORECAST_ALPHA", 0.5)
	if err != nil {
		return nil, err
	}
	beta, err := getEnvFloat("ENGINE_FORECAST_BETA", 0.3)
	if err != nil {
		return nil, err
	}
	clamp, err := getEnvFloat("ENGINE_FORECAST_CLAMP", 0.15)
	if err != nil {
		return nil, err
	}

	config.Engine = EngineConfig{
		ExtraVenueCode:      getEnv("ENGINE_EXTRA_VENUE_CODE", "extra"),
		DefaultBasePerShift: defaultBase,
		ProjectionFactor:    projection,
		ForecastAlpha:       alpha,
		ForecastBeta:        beta,
		ForecastClamp:       clamp,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Engine.ForecastAlpha < 0 || c.Engine.ForecastAlpha > 1 {
		return fmt.Errorf("ENGINE_FORECAST_ALPHA must be between 0 and 1")
	}
	if c.Engine.ForecastBeta < 0 || c.Engine.ForecastBeta > 1 {
		return fmt.Errorf("ENGINE_FORECAST_BETA must be between 0 and 1")
	}
	if c.Engine.ForecastClamp < 0 {
		return fmt.Errorf("ENGINE_FORECAST_CLAMP must be non-negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

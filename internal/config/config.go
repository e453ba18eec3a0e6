// Package config provides configuration management for the Value Scout application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	OddsFeed OddsFeedConfig `mapstructure:"odds_feed" validate:"required"`
	Model    ModelConfig    `mapstructure:"model" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// OddsFeedConfig represents odds provider API configuration
type OddsFeedConfig struct {
	BaseURL          string   `mapstructure:"base_url" validate:"required,url"`
	APIKey           string   `mapstructure:"api_key" validate:"required"`
	SportKeys        []string `mapstructure:"sport_keys" validate:"required,min=1"`
	Regions          string   `mapstructure:"regions" validate:"required"`
	Markets          string   `mapstructure:"markets" validate:"required"`
	TimeoutSeconds   int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries       int      `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSec  float64  `mapstructure:"rate_limit_per_sec" validate:"required,gt=0"`
}

// ModelConfig represents prediction model configuration
type ModelConfig struct {
	ArtifactPath         string  `mapstructure:"artifact_path" validate:"required"`
	EdgeThreshold        float64 `mapstructure:"edge_threshold" validate:"gte=0,lte=1"`
	SyntheticSamples     int     `mapstructure:"synthetic_samples" validate:"required,gt=0"`
	TreeCount            int     `mapstructure:"tree_count" validate:"required,gt=0"`
	PredictionCacheTTL   int     `mapstructure:"prediction_cache_ttl_seconds" validate:"required,gt=0"`
	PredictionCacheSize  int     `mapstructure:"prediction_cache_max_size" validate:"required,gt=0"`
}

// ScheduleConfig represents pipeline scheduling configuration
type ScheduleConfig struct {
	RefreshIntervalSeconds    int `mapstructure:"refresh_interval_seconds" validate:"required,gt=0"`
	LiveUpdateIntervalSeconds int `mapstructure:"live_update_interval_seconds" validate:"required,gt=0"`
}

// ServerConfig represents the HTTP API server configuration
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	HealthPort     int      `mapstructure:"health_port" validate:"required,min=1,max=65535"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// PredictionCacheTTL returns the prediction cache TTL as a duration
func (c *Config) PredictionCacheTTL() time.Duration {
	return time.Duration(c.Model.PredictionCacheTTL) * time.Second
}

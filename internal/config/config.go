package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"motiflab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// AnalysisConfig holds engine defaults
type AnalysisConfig struct {
	Workers      int     // Region agreement worker pool size
	Window       int     // Positions flattened per chunk in region agreement
	BinWidth     float64 // Default histogram bin width
	OverlapAlpha float64 // Significance threshold for over/under-representation flags
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// MetricsConfig holds prometheus settings
type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Analysis: *loadAnalysisConfig(),
		Logging:  LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
		Metrics:  MetricsConfig{Enabled: getEnvBoolOrDefault("METRICS_ENABLED", true)},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", GinMode: "release", ShutdownTimeout: 10 * time.Second},
		Analysis: AnalysisConfig{
			Workers:      runtime.GOMAXPROCS(0),
			Window:       DefaultWindow,
			BinWidth:     1,
			OverlapAlpha: 0.05,
		},
		Logging: LoggingConfig{Level: "INFO"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// DefaultWindow is the flattening chunk size for region agreement
const DefaultWindow = 10000

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		Workers:      getEnvIntOrDefault("AGREEMENT_WORKERS", runtime.GOMAXPROCS(0)),
		Window:       getEnvIntOrDefault("AGREEMENT_WINDOW", DefaultWindow),
		BinWidth:     getEnvFloatOrDefault("HISTOGRAM_BIN_WIDTH", 1),
		OverlapAlpha: getEnvFloatOrDefault("OVERLAP_ALPHA", 0.05),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Analysis.Workers < 1 {
		return errors.ConfigInvalid("AGREEMENT_WORKERS must be at least 1")
	}
	if config.Analysis.Window < 1 {
		return errors.ConfigInvalid("AGREEMENT_WINDOW must be at least 1")
	}
	if config.Analysis.BinWidth <= 0 {
		return errors.ConfigInvalid("HISTOGRAM_BIN_WIDTH must be positive")
	}
	if config.Analysis.OverlapAlpha <= 0 || config.Analysis.OverlapAlpha >= 1 {
		return errors.ConfigInvalid("OVERLAP_ALPHA must be in (0, 1)")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

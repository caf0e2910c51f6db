package config

import (
	"os"
	"runtime"
	"strconv"

	"panelmc/internal/errors"
)

// Config represents the complete harness configuration
type Config struct {
	Sweep    SweepConfig
	Database DatabaseConfig
}

// SweepConfig holds the simulation parameters
type SweepConfig struct {
	MasterSeed        int64
	Replications      int
	Workers           int
	SignificanceLevel float64
}

// DatabaseConfig holds the optional results ledger settings. The ledger is
// skipped entirely when URL is empty.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Sweep: SweepConfig{
			MasterSeed:        getEnvInt64OrDefault("MASTER_SEED", 42),
			Replications:      getEnvIntOrDefault("REPLICATIONS", 100),
			Workers:           getEnvIntOrDefault("WORKERS", runtime.NumCPU()),
			SignificanceLevel: getEnvFloatOrDefault("SIGNIFICANCE_LEVEL", 0.05),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Sweep.Replications < 1 {
		return errors.ConfigInvalid("REPLICATIONS must be at least 1")
	}
	if config.Sweep.Workers < 1 {
		return errors.ConfigInvalid("WORKERS must be at least 1")
	}
	if config.Sweep.SignificanceLevel <= 0 || config.Sweep.SignificanceLevel >= 1 {
		return errors.ConfigInvalid("SIGNIFICANCE_LEVEL must be in (0,1)")
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
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

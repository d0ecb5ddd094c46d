// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds application configuration
type Config struct {
	Port           int
	LogLevel       string
	LogPretty      bool
	DevMode        bool
	CatalogPath    string  // Empty means the catalog embedded in the binary
	DriftThreshold float64 // Default rebalancing threshold
	RiskFreeRate   float64 // Default annual risk-free rate for Sharpe/Sortino
	SumTolerance   float64 // Allocation sum tolerance; overrides the catalog's value
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvAsInt("PORT", 8001),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("LOG_PRETTY", true),
		DevMode:        getEnvAsBool("DEV_MODE", false),
		CatalogPath:    getEnv("CATALOG_PATH", ""),
		DriftThreshold: getEnvAsFloat("DRIFT_THRESHOLD", 0.05),
		RiskFreeRate:   getEnvAsFloat("RISK_FREE_RATE", 0),
		SumTolerance:   getEnvAsFloat("SUM_TOLERANCE", 0.001),
	}

	if cfg.CatalogPath != "" {
		abs, err := filepath.Abs(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
		}
		cfg.CatalogPath = abs
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every value is usable
func (c *Config) Validate() error {
	var problems []string

	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if !(c.DriftThreshold > 0 && c.DriftThreshold < 1) {
		problems = append(problems, fmt.Sprintf("DRIFT_THRESHOLD must be in (0, 1), got %g", c.DriftThreshold))
	}
	if math.IsNaN(c.RiskFreeRate) || math.IsInf(c.RiskFreeRate, 0) {
		problems = append(problems, "RISK_FREE_RATE must be a finite number")
	}
	if !(c.SumTolerance > 0 && c.SumTolerance < 0.1) {
		problems = append(problems, fmt.Sprintf("SUM_TOLERANCE must be in (0, 0.1), got %g", c.SumTolerance))
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			problems = append(problems, fmt.Sprintf("CATALOG_PATH: %v", err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

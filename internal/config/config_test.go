package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_PRETTY", "DEV_MODE", "CATALOG_PATH",
		"DRIFT_THRESHOLD", "RISK_FREE_RATE", "SUM_TOLERANCE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.False(t, cfg.DevMode)
	assert.Empty(t, cfg.CatalogPath)
	assert.Equal(t, 0.05, cfg.DriftThreshold)
	assert.Equal(t, 0.0, cfg.RiskFreeRate)
	assert.Equal(t, 0.001, cfg.SumTolerance)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("CATALOG_PATH", path)
	t.Setenv("DRIFT_THRESHOLD", "0.1")
	t.Setenv("RISK_FREE_RATE", "0.02")
	t.Setenv("SUM_TOLERANCE", "0.005")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, path, cfg.CatalogPath)
	assert.Equal(t, 0.1, cfg.DriftThreshold)
	assert.Equal(t, 0.02, cfg.RiskFreeRate)
	assert.Equal(t, 0.005, cfg.SumTolerance)
}

func TestLoad_UnparsableValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")
	t.Setenv("DRIFT_THRESHOLD", "five percent")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, 0.05, cfg.DriftThreshold)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Port: 8001, LogLevel: "info", DriftThreshold: 0.05, SumTolerance: 0.001}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		message string
	}{
		{"port", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"zero threshold", func(c *Config) { c.DriftThreshold = 0 }, "DRIFT_THRESHOLD"},
		{"full threshold", func(c *Config) { c.DriftThreshold = 1 }, "DRIFT_THRESHOLD"},
		{"tolerance", func(c *Config) { c.SumTolerance = 0.5 }, "SUM_TOLERANCE"},
		{"catalog path", func(c *Config) { c.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml") }, "CATALOG_PATH"},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

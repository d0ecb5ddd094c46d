// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/config"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/metrics"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/catalog"
	"github.com/rs/zerolog"
)

// Wire initializes all dependencies and returns a fully configured container
// Order of operations:
// 1. Load and validate the catalog tables
// 2. Initialize engine components
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	// Step 1: Load tables
	tables, err := catalog.LoadTables(cfg.CatalogPath, cfg.SumTolerance)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	source := cfg.CatalogPath
	if source == "" {
		source = "embedded"
	}
	log.Info().
		Str("source", source).
		Int("instruments", tables.Universe.Size()).
		Int("max_score", tables.Weights.MaxScore()).
		Float64("sum_tolerance", tables.SumTolerance).
		Msg("Catalog loaded")
	metrics.CatalogInstruments.Set(float64(tables.Universe.Size()))

	container := &Container{
		Tables:     tables,
		Universe:   tables.Universe,
		Weights:    tables.Weights,
		Classifier: tables.Classifier,
		Models:     tables.Models,
		Validator:  tables.Validator,
	}

	// Step 2: Initialize engine components
	InitializeServices(container, cfg, log)

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, nil
}

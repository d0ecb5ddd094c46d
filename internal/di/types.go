/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all engine components.
 * The Container is the single source of truth for all component instances and
 * is passed to the server and the CLI.
 */
package di

import (
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/allocation"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/catalog"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/comparison"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/diversification"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/performance"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/portfolio"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/questionnaire"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/rebalancing"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/risk"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe"
)

/**
 * Container holds all dependencies for the application.
 *
 * Architecture:
 * - Tables: read-only configuration built from the catalog (universe,
 *   questionnaire weights, bucket thresholds, model portfolios)
 * - Components: stateless engine components sharing those tables
 *
 * Every component is safe for concurrent use; nothing here is mutated
 * after Wire returns.
 */
type Container struct {
	// Configuration tables
	Tables     *catalog.Tables
	Universe   *universe.Universe
	Weights    *questionnaire.WeightTable
	Classifier *risk.Classifier
	Models     *portfolio.Catalog
	Validator  *allocation.Validator

	// Engine components
	Scorer     *questionnaire.Scorer
	Profiler   *risk.Profiler
	Composer   *allocation.Composer
	Analyzer   *diversification.Analyzer
	Advisor    *rebalancing.Advisor
	Calculator *performance.Calculator
	Comparator *comparison.Comparator
}

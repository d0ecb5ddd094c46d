package di

import (
	"github.com/Gonzalodlm/proyecto-L-v2/internal/config"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/allocation"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/comparison"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/diversification"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/performance"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/questionnaire"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/rebalancing"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/risk"
	"github.com/rs/zerolog"
)

// InitializeServices creates the engine components on top of the tables
// already loaded into container
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) {
	// Profiling: questionnaire -> score -> bucket -> model
	container.Scorer = questionnaire.NewScorer(container.Weights, log)
	container.Profiler = risk.NewProfiler(container.Scorer, container.Classifier, container.Models, log)

	// Allocation construction
	container.Composer = allocation.NewComposer(container.Validator, container.Models, container.Universe, log)

	// Analysis
	container.Analyzer = diversification.NewAnalyzer(container.Validator, container.Universe, diversification.DefaultConfig(), log)
	container.Advisor = rebalancing.NewAdvisor(container.Validator, cfg.DriftThreshold, log)

	// Performance
	container.Calculator = performance.NewCalculator(cfg.RiskFreeRate, log)
	container.Comparator = comparison.NewComparator(container.Calculator, container.Analyzer, log)

	log.Info().Msg("Engine components initialized")
}

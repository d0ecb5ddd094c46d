package testing

import (
	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/allocation"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/catalog"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/questionnaire"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/risk"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe"
	"github.com/rs/zerolog"
)

// NewTables builds the engine tables from the embedded catalog.
// It panics if the catalog is invalid, which the catalog tests rule out.
func NewTables() *catalog.Tables {
	tables, err := catalog.LoadTables("", 0)
	if err != nil {
		panic(err)
	}
	return tables
}

// NewProfiler returns a profiler over the embedded catalog
func NewProfiler() *risk.Profiler {
	tables := NewTables()
	scorer := questionnaire.NewScorer(tables.Weights, zerolog.Nop())
	return risk.NewProfiler(scorer, tables.Classifier, tables.Models, zerolog.Nop())
}

// NewComposer returns an allocation composer over the embedded catalog
func NewComposer() *allocation.Composer {
	tables := NewTables()
	return allocation.NewComposer(tables.Validator, tables.Models, tables.Universe, zerolog.Nop())
}

// NewInstrumentFixtures returns the five catalog instruments for use in tests
func NewInstrumentFixtures() []universe.Instrument {
	return []universe.Instrument{
		{Ticker: "BIL", Name: "SPDR Bloomberg 1-3 Month T-Bill ETF", Category: universe.CategoryCash, AssetClass: "Cash / T-Bills", RiskLevel: universe.RiskLow, ExpectedReturn: "2-4%", Color: "#2E7D32"},
		{Ticker: "AGG", Name: "iShares Core U.S. Aggregate Bond ETF", Category: universe.CategoryBonds, AssetClass: "Bonds", RiskLevel: universe.RiskLow, ExpectedReturn: "3-5%", Color: "#1976D2"},
		{Ticker: "ACWI", Name: "iShares MSCI ACWI ETF", Category: universe.CategoryEquities, AssetClass: "Equities", RiskLevel: universe.RiskMediumHigh, ExpectedReturn: "7-10%", Color: "#388E3C"},
		{Ticker: "VNQ", Name: "Vanguard Real Estate ETF", Category: universe.CategoryRealEstate, AssetClass: "REITs", RiskLevel: universe.RiskMediumHigh, ExpectedReturn: "6-9%", Color: "#F57C00"},
		{Ticker: "GLD", Name: "SPDR Gold Shares", Category: universe.CategoryCommodities, AssetClass: "Commodities", RiskLevel: universe.RiskMedium, ExpectedReturn: "Variable", Color: "#FFD700"},
	}
}

// NewBalancedAnswers returns an answer set scoring 27 (Balanced)
func NewBalancedAnswers() questionnaire.Answers {
	return questionnaire.Answers{
		Age:       40,
		Horizon:   questionnaire.Horizon5To10Years,
		Income:    questionnaire.Income10To20Pct,
		Knowledge: questionnaire.KnowledgeIntermediate,
		MaxDrop:   questionnaire.MaxDrop20Pct,
		Reaction:  questionnaire.ReactionHold,
		Liquidity: questionnaire.LiquidityMedium,
		Goal:      questionnaire.GoalBalancedGrowth,
		Inflation: questionnaire.InflationModeratelyConcerned,
		Digital:   questionnaire.DigitalMedium,
	}
}

// NewCautiousAnswers returns the least risk-seeking answer set (score 0)
func NewCautiousAnswers() questionnaire.Answers {
	return questionnaire.Answers{
		Age:       75,
		Horizon:   questionnaire.HorizonUnder3Years,
		Income:    questionnaire.IncomeUnder5Pct,
		Knowledge: questionnaire.KnowledgeBeginner,
		MaxDrop:   questionnaire.MaxDrop5Pct,
		Reaction:  questionnaire.ReactionSellAll,
		Liquidity: questionnaire.LiquidityHigh,
		Goal:      questionnaire.GoalPreserveCapital,
		Inflation: questionnaire.InflationNotConcerned,
		Digital:   questionnaire.DigitalLow,
	}
}

// NewBoldAnswers returns the most risk-seeking answer set (score 42)
func NewBoldAnswers() questionnaire.Answers {
	return questionnaire.Answers{
		Age:       22,
		Horizon:   questionnaire.HorizonOver10Years,
		Income:    questionnaire.IncomeOver20Pct,
		Knowledge: questionnaire.KnowledgeAdvanced,
		MaxDrop:   questionnaire.MaxDropOver30Pct,
		Reaction:  questionnaire.ReactionBuyMore,
		Liquidity: questionnaire.LiquidityLow,
		Goal:      questionnaire.GoalMaxGrowth,
		Inflation: questionnaire.InflationVeryConcerned,
		Digital:   questionnaire.DigitalHigh,
	}
}

// NewRawAnswers converts answers into the raw submission shape
func NewRawAnswers(a questionnaire.Answers) questionnaire.RawAnswers {
	return questionnaire.RawAnswers{
		Age:       intPtr(a.Age),
		Horizon:   strPtr(string(a.Horizon)),
		Income:    strPtr(string(a.Income)),
		Knowledge: strPtr(string(a.Knowledge)),
		MaxDrop:   strPtr(string(a.MaxDrop)),
		Reaction:  strPtr(string(a.Reaction)),
		Liquidity: strPtr(string(a.Liquidity)),
		Goal:      strPtr(string(a.Goal)),
		Inflation: strPtr(string(a.Inflation)),
		Digital:   strPtr(string(a.Digital)),
	}
}

// NewBalancedModel returns the bucket 2 model weights
func NewBalancedModel() domain.Allocation {
	return domain.Allocation{"BIL": 0.05, "AGG": 0.25, "ACWI": 0.45, "VNQ": 0.15, "GLD": 0.10}
}

// NewGrowingSeries returns a monthly value series growing 10% per period
func NewGrowingSeries() []float64 {
	return []float64{100, 110, 121}
}

// NewVolatileSeries returns a series with a 50% drawdown and full recovery
func NewVolatileSeries() []float64 {
	return []float64{100, 50, 100}
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}

// Package diversification scores how spread out an allocation is and
// suggests improvements.
package diversification

import (
	"fmt"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Recommendation codes
const (
	CodeReduceConcentration         = "reduce_concentration"
	CodeBroadenDiversification      = "broaden_diversification"
	CodeAddEquity                   = "add_equity"
	CodeAddBonds                    = "add_bonds"
	CodeConsolidateSmallPositions   = "consolidate_small_positions"
	CodeReduceCategoryConcentration = "reduce_category_concentration"
)

// Validator checks an allocation before it is analyzed
type Validator interface {
	Validate(a domain.Allocation) error
}

// Config holds the recommendation thresholds
type Config struct {
	// MaxWeight above which a single position is too concentrated
	MaxWeight float64 `json:"max_weight" yaml:"max_weight"`
	// MinPositions below which the allocation is too narrow
	MinPositions int `json:"min_positions" yaml:"min_positions"`
	// SmallWeight below which a non-zero position counts as small
	SmallWeight float64 `json:"small_weight" yaml:"small_weight"`
	// MaxSmallPositions tolerated before suggesting consolidation
	MaxSmallPositions int `json:"max_small_positions" yaml:"max_small_positions"`
	// MaxCategoryWeight above which a category is too concentrated
	MaxCategoryWeight float64 `json:"max_category_weight" yaml:"max_category_weight"`
}

// DefaultConfig returns the standard thresholds
func DefaultConfig() Config {
	return Config{
		MaxWeight:         0.5,
		MinPositions:      3,
		SmallWeight:       0.05,
		MaxSmallPositions: 2,
		MaxCategoryWeight: 0.7,
	}
}

// Recommendation is an actionable suggestion
type Recommendation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Report is the diversification analysis of an allocation
type Report struct {
	Score                 float64                       `json:"score"`
	CategoryConcentration map[universe.Category]float64 `json:"category_concentration"`
	MaxWeight             float64                       `json:"max_weight"`
	MaxWeightTicker       domain.Ticker                 `json:"max_weight_ticker"`
	Positions             int                           `json:"positions"`
	EffectivePositions    float64                       `json:"effective_positions"`
	Recommendations       []Recommendation              `json:"recommendations"`
}

// Analyzer computes diversification reports. It is stateless.
type Analyzer struct {
	validator Validator
	universe  *universe.Universe
	config    Config
	log       zerolog.Logger
}

// NewAnalyzer creates an analyzer. Zero-valued thresholds take their defaults.
func NewAnalyzer(v Validator, u *universe.Universe, cfg Config, log zerolog.Logger) *Analyzer {
	def := DefaultConfig()
	if cfg.MaxWeight <= 0 {
		cfg.MaxWeight = def.MaxWeight
	}
	if cfg.MinPositions <= 0 {
		cfg.MinPositions = def.MinPositions
	}
	if cfg.SmallWeight <= 0 {
		cfg.SmallWeight = def.SmallWeight
	}
	if cfg.MaxSmallPositions <= 0 {
		cfg.MaxSmallPositions = def.MaxSmallPositions
	}
	if cfg.MaxCategoryWeight <= 0 {
		cfg.MaxCategoryWeight = def.MaxCategoryWeight
	}
	return &Analyzer{
		validator: v,
		universe:  u,
		config:    cfg,
		log:       log.With().Str("component", "diversification_analyzer").Logger(),
	}
}

// Config returns the thresholds in use
func (a *Analyzer) Config() Config {
	return a.config
}

// Analyze validates the allocation and reports its concentration.
// The score is 1 - Σw², so 0 means a single position and values approach 1
// as weight spreads over more positions.
func (a *Analyzer) Analyze(alloc domain.Allocation) (Report, error) {
	if err := a.validator.Validate(alloc); err != nil {
		return Report{}, err
	}

	sumSquares := decimal.Zero
	categories := make(map[universe.Category]decimal.Decimal)
	report := Report{CategoryConcentration: make(map[universe.Category]float64)}
	small := 0

	for _, t := range alloc.Tickers() {
		w := alloc[t]
		if w == 0 {
			continue
		}
		inst, err := a.universe.Lookup(t)
		if err != nil {
			return Report{}, err
		}

		dw := decimal.NewFromFloat(w)
		sumSquares = sumSquares.Add(dw.Mul(dw))
		categories[inst.Category] = categories[inst.Category].Add(dw)

		report.Positions++
		// Tickers are sorted, so ties keep the first ticker
		if w > report.MaxWeight {
			report.MaxWeight = w
			report.MaxWeightTicker = t
		}
		if w < a.config.SmallWeight {
			small++
		}
	}

	score := decimal.NewFromInt(1).Sub(sumSquares)
	if score.IsNegative() {
		score = decimal.Zero
	}
	report.Score = score.InexactFloat64()
	if sumSquares.IsPositive() {
		report.EffectivePositions = decimal.NewFromInt(1).DivRound(sumSquares, 6).InexactFloat64()
	}
	for c, w := range categories {
		report.CategoryConcentration[c] = w.InexactFloat64()
	}

	report.Recommendations = a.recommend(report, small)

	a.log.Debug().
		Float64("score", report.Score).
		Int("positions", report.Positions).
		Int("recommendations", len(report.Recommendations)).
		Msg("Analyzed diversification")

	return report, nil
}

func (a *Analyzer) recommend(r Report, small int) []Recommendation {
	recs := make([]Recommendation, 0)
	cfg := a.config

	if r.MaxWeight > cfg.MaxWeight {
		recs = append(recs, Recommendation{
			Code:    CodeReduceConcentration,
			Message: fmt.Sprintf("%s holds %.0f%% of the portfolio; consider spreading it below %.0f%%", r.MaxWeightTicker, r.MaxWeight*100, cfg.MaxWeight*100),
		})
	}
	if r.Positions < cfg.MinPositions {
		recs = append(recs, Recommendation{
			Code:    CodeBroadenDiversification,
			Message: fmt.Sprintf("only %d position(s); consider holding at least %d", r.Positions, cfg.MinPositions),
		})
	}
	if r.CategoryConcentration[universe.CategoryEquities] == 0 {
		recs = append(recs, Recommendation{
			Code:    CodeAddEquity,
			Message: "no equity exposure; consider adding equities for long-term growth",
		})
	}
	if r.CategoryConcentration[universe.CategoryBonds] == 0 {
		recs = append(recs, Recommendation{
			Code:    CodeAddBonds,
			Message: "no bond exposure; consider adding bonds for stability and income",
		})
	}
	if small > cfg.MaxSmallPositions {
		recs = append(recs, Recommendation{
			Code:    CodeConsolidateSmallPositions,
			Message: fmt.Sprintf("%d positions are below %.0f%%; consider consolidating them", small, cfg.SmallWeight*100),
		})
	}
	for _, c := range universe.Categories() {
		if w := r.CategoryConcentration[c]; w > cfg.MaxCategoryWeight {
			recs = append(recs, Recommendation{
				Code:    CodeReduceCategoryConcentration,
				Message: fmt.Sprintf("%s make up %.0f%% of the portfolio; consider keeping each category below %.0f%%", c, w*100, cfg.MaxCategoryWeight*100),
			})
		}
	}

	return recs
}

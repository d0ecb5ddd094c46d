// Package rebalancing compares a current allocation with its target and
// suggests the adjustments that bring it back in line.
package rebalancing

import (
	"fmt"
	"math"
	"sort"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultThreshold is the absolute drift above which a position is flagged
const DefaultThreshold = 0.05

// Actions
const (
	ActionReduce   = "reduce"
	ActionIncrease = "increase"
)

// Validator checks both allocations before they are compared
type Validator interface {
	Validate(a domain.Allocation) error
}

// TradeCosts describes the broker fee schedule used to flag uneconomic trades
type TradeCosts struct {
	Fixed        float64 `json:"fixed"`
	Variable     float64 `json:"variable"`
	MaxCostRatio float64 `json:"max_cost_ratio"`
}

// MinTradeValue is the smallest trade whose costs stay within MaxCostRatio.
//
// With a 2.00 fixed fee and 0.2% variable fee:
//   - a 50 trade costs 2.10, a 4.2% drag
//   - a 400 trade costs 2.80, a 0.7% drag
//
// Solving (fixed + v*variable)/v = ratio gives v = fixed/(ratio - variable).
func (c TradeCosts) MinTradeValue() float64 {
	denominator := c.MaxCostRatio - c.Variable
	if denominator <= 0 {
		return math.Inf(1)
	}
	return c.Fixed / denominator
}

// Options tune a single rebalance request
type Options struct {
	// Threshold overrides the advisor default when non-zero
	Threshold float64 `json:"threshold,omitempty"`
	// PortfolioValue, when positive, converts drifts into currency amounts
	PortfolioValue float64 `json:"portfolio_value,omitempty"`
	// Costs, when set with a portfolio value, flags trades too small to be worth their fees
	Costs *TradeCosts `json:"costs,omitempty"`
}

// Drift is the deviation of one ticker from its target
type Drift struct {
	Ticker  domain.Ticker `json:"ticker"`
	Current float64       `json:"current"`
	Target  float64       `json:"target"`
	Drift   float64       `json:"drift"`
}

// Suggestion is a proposed adjustment for a ticker beyond the threshold
type Suggestion struct {
	Ticker        domain.Ticker `json:"ticker"`
	Action        string        `json:"action"`
	Magnitude     float64       `json:"magnitude"`
	Current       float64       `json:"current"`
	Target        float64       `json:"target"`
	TradeValue    *float64      `json:"trade_value,omitempty"`
	BelowMinTrade bool          `json:"below_min_trade,omitempty"`
}

// Plan is the outcome of suggest_rebalance
type Plan struct {
	Drifts           []Drift      `json:"drifts"`
	Suggestions      []Suggestion `json:"suggestions"`
	NeedsRebalancing bool         `json:"needs_rebalancing"`
	Threshold        float64      `json:"threshold"`
	// Turnover is half the sum of absolute drifts: the fraction of the
	// portfolio that changes hands when fully rebalanced
	Turnover       float64  `json:"turnover"`
	PortfolioValue *float64 `json:"portfolio_value,omitempty"`
	MinTradeValue  *float64 `json:"min_trade_value,omitempty"`
}

// Advisor produces rebalance plans. It holds no state between calls.
type Advisor struct {
	validator Validator
	threshold float64
	log       zerolog.Logger
}

// NewAdvisor creates an advisor. A non-positive threshold falls back to
// DefaultThreshold.
func NewAdvisor(v Validator, threshold float64, log zerolog.Logger) *Advisor {
	if threshold <= 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		threshold = DefaultThreshold
	}
	return &Advisor{
		validator: v,
		threshold: threshold,
		log:       log.With().Str("component", "rebalance_advisor").Logger(),
	}
}

// Threshold returns the default drift threshold
func (a *Advisor) Threshold() float64 {
	return a.threshold
}

// Suggest validates both allocations and lists, for every ticker in either,
// the drift current - target. Tickers drifting by more than the threshold
// get a suggestion; suggestions are sorted by magnitude, then ticker.
func (a *Advisor) Suggest(current, target domain.Allocation, opts Options) (Plan, error) {
	if err := a.validator.Validate(current); err != nil {
		return Plan{}, fmt.Errorf("current allocation: %w", err)
	}
	if err := a.validator.Validate(target); err != nil {
		return Plan{}, fmt.Errorf("target allocation: %w", err)
	}

	threshold := a.threshold
	if opts.Threshold != 0 {
		if math.IsNaN(opts.Threshold) || opts.Threshold < 0 || opts.Threshold >= 1 {
			return Plan{}, domain.ValidationError{Field: "threshold", Value: fmt.Sprint(opts.Threshold), Message: "must be a fraction between 0 and 1"}
		}
		threshold = opts.Threshold
	}
	if opts.PortfolioValue < 0 || math.IsNaN(opts.PortfolioValue) || math.IsInf(opts.PortfolioValue, 0) {
		return Plan{}, domain.ValidationError{Field: "portfolio_value", Value: fmt.Sprint(opts.PortfolioValue), Message: "must be a positive amount"}
	}

	limit := decimal.NewFromFloat(threshold)
	value := decimal.NewFromFloat(opts.PortfolioValue)

	plan := Plan{
		Drifts:      make([]Drift, 0),
		Suggestions: make([]Suggestion, 0),
		Threshold:   threshold,
	}
	if opts.PortfolioValue > 0 {
		pv := opts.PortfolioValue
		plan.PortfolioValue = &pv
		if opts.Costs != nil {
			minTrade := opts.Costs.MinTradeValue()
			if !math.IsInf(minTrade, 0) {
				plan.MinTradeValue = &minTrade
			}
		}
	}

	turnover := decimal.Zero
	for _, t := range union(current, target) {
		cur := decimal.NewFromFloat(current[t])
		tgt := decimal.NewFromFloat(target[t])
		drift := cur.Sub(tgt)
		turnover = turnover.Add(drift.Abs())

		plan.Drifts = append(plan.Drifts, Drift{
			Ticker:  t,
			Current: current[t],
			Target:  target[t],
			Drift:   drift.InexactFloat64(),
		})

		if !drift.Abs().GreaterThan(limit) {
			continue
		}

		s := Suggestion{
			Ticker:    t,
			Action:    ActionIncrease,
			Magnitude: drift.Abs().InexactFloat64(),
			Current:   current[t],
			Target:    target[t],
		}
		if drift.IsPositive() {
			s.Action = ActionReduce
		}
		if plan.PortfolioValue != nil {
			tv := drift.Abs().Mul(value).Round(2).InexactFloat64()
			s.TradeValue = &tv
			if plan.MinTradeValue != nil && tv < *plan.MinTradeValue {
				s.BelowMinTrade = true
			}
		}
		plan.Suggestions = append(plan.Suggestions, s)
	}

	sort.SliceStable(plan.Suggestions, func(i, j int) bool {
		if plan.Suggestions[i].Magnitude != plan.Suggestions[j].Magnitude {
			return plan.Suggestions[i].Magnitude > plan.Suggestions[j].Magnitude
		}
		return plan.Suggestions[i].Ticker < plan.Suggestions[j].Ticker
	})

	plan.NeedsRebalancing = len(plan.Suggestions) > 0
	plan.Turnover = turnover.Div(decimal.NewFromInt(2)).InexactFloat64()

	a.log.Debug().
		Int("suggestions", len(plan.Suggestions)).
		Float64("threshold", threshold).
		Float64("turnover", plan.Turnover).
		Msg("Built rebalance plan")

	return plan, nil
}

// union returns every ticker of either allocation in lexical order
func union(a, b domain.Allocation) []domain.Ticker {
	merged := a.Clone()
	for t := range b {
		if _, ok := merged[t]; !ok {
			merged[t] = 0
		}
	}
	return merged.Tickers()
}

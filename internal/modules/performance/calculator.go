// Package performance computes return and risk metrics of value series.
package performance

import (
	"fmt"
	"math"
	"strings"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/pkg/formulas"
	"github.com/rs/zerolog"
)

// MinPoints is the shortest series with at least one return
const MinPoints = 2

// Interval is the spacing of a value series
type Interval string

const (
	IntervalDaily     Interval = "daily"
	IntervalWeekly    Interval = "weekly"
	IntervalMonthly   Interval = "monthly"
	IntervalQuarterly Interval = "quarterly"
	IntervalAnnual    Interval = "annual"
)

// DefaultInterval applies when a request names neither an interval nor
// an explicit periods-per-year
const DefaultInterval = IntervalDaily

var periodsPerYear = map[Interval]int{
	IntervalDaily:     252,
	IntervalWeekly:    52,
	IntervalMonthly:   12,
	IntervalQuarterly: 4,
	IntervalAnnual:    1,
}

// PeriodsPerYear returns the number of observations per year for interval
func (i Interval) PeriodsPerYear() (int, bool) {
	n, ok := periodsPerYear[Interval(strings.ToLower(string(i)))]
	return n, ok
}

// ResolvePeriodsPerYear picks the explicit value when positive, otherwise
// the interval's value, otherwise the default interval's
func ResolvePeriodsPerYear(interval Interval, explicit int) (int, error) {
	if explicit < 0 {
		return 0, domain.ValidationError{Field: "periods_per_year", Value: fmt.Sprint(explicit), Message: "must be a positive integer"}
	}
	if explicit > 0 {
		return explicit, nil
	}
	if interval == "" {
		interval = DefaultInterval
	}
	n, ok := interval.PeriodsPerYear()
	if !ok {
		return 0, domain.ValidationError{
			Field:   "interval",
			Value:   string(interval),
			Message: "must be one of daily, weekly, monthly, quarterly, annual",
		}
	}
	return n, nil
}

// Metrics summarises the performance of a value series.
// Sharpe and Sortino are nil when undefined; Notices says why.
type Metrics struct {
	TotalReturn      float64                        `json:"total_return"`
	AnnualizedReturn float64                        `json:"annualized_return"`
	Volatility       float64                        `json:"volatility"`
	Sharpe           *float64                       `json:"sharpe"`
	Sortino          *float64                       `json:"sortino"`
	MaxDrawdown      float64                        `json:"max_drawdown"`
	CurrentDrawdown  float64                        `json:"current_drawdown"`
	Points           int                            `json:"points"`
	PeriodsPerYear   int                            `json:"periods_per_year"`
	RiskFreeRate     float64                        `json:"risk_free_rate"`
	Notices          []domain.DegenerateMetricError `json:"notices,omitempty"`
}

// Calculator computes metrics. It is stateless apart from its default
// risk-free rate.
type Calculator struct {
	riskFreeRate float64
	log          zerolog.Logger
}

// NewCalculator creates a calculator with a default annual risk-free rate
func NewCalculator(riskFreeRate float64, log zerolog.Logger) *Calculator {
	return &Calculator{
		riskFreeRate: riskFreeRate,
		log:          log.With().Str("component", "performance_calculator").Logger(),
	}
}

// RiskFreeRate returns the default annual risk-free rate
func (c *Calculator) RiskFreeRate() float64 {
	return c.riskFreeRate
}

// Compute derives metrics from positive values sampled periodsPerYear times
// a year. A nil riskFree uses the calculator default. A return or volatility
// too large to represent fails with domain.DegenerateMetricError.
func (c *Calculator) Compute(values []float64, periodsPerYear int, riskFree *float64) (Metrics, error) {
	if len(values) < MinPoints {
		return Metrics{}, domain.InsufficientDataError{Points: len(values), Required: MinPoints}
	}
	if periodsPerYear <= 0 {
		return Metrics{}, domain.ValidationError{Field: "periods_per_year", Value: fmt.Sprint(periodsPerYear), Message: "must be a positive integer"}
	}
	rf := c.riskFreeRate
	if riskFree != nil {
		rf = *riskFree
	}
	if math.IsNaN(rf) || math.IsInf(rf, 0) {
		return Metrics{}, domain.ValidationError{Field: "risk_free_rate", Value: fmt.Sprint(rf), Message: "must be a finite number"}
	}

	var errs domain.ValidationErrors
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			errs = append(errs, domain.ValidationError{
				Field:   fmt.Sprintf("values[%d]", i),
				Value:   fmt.Sprint(v),
				Message: "must be a positive finite number",
			})
		}
	}
	if len(errs) > 0 {
		return Metrics{}, errs
	}

	returns := formulas.CalculateReturns(values)
	total := formulas.TotalReturn(values)
	annualized := formulas.AnnualizeReturn(total, len(returns), periodsPerYear)
	volatility := formulas.AnnualizedVolatility(returns, periodsPerYear)
	drawdown := formulas.CalculateDrawdownMetrics(values)

	for _, h := range []struct {
		metric string
		value  float64
	}{
		{"total_return", total},
		{"annualized_return", annualized},
		{"volatility", volatility},
	} {
		if !finite(h.value) {
			return Metrics{}, domain.DegenerateMetricError{Metric: h.metric, Reason: "exceeds the floating-point range"}
		}
	}

	m := Metrics{
		TotalReturn:      total,
		AnnualizedReturn: annualized,
		Volatility:       volatility,
		Sharpe:           formulas.CalculateSharpeRatio(annualized, rf, volatility),
		Sortino:          formulas.CalculateSortinoRatio(returns, annualized, rf, periodsPerYear),
		MaxDrawdown:      drawdown.MaxDrawdown,
		CurrentDrawdown:  drawdown.CurrentDrawdown,
		Points:           len(values),
		PeriodsPerYear:   periodsPerYear,
		RiskFreeRate:     rf,
	}
	if m.Sharpe != nil && !finite(*m.Sharpe) {
		m.Sharpe = nil
		m.Notices = append(m.Notices, domain.DegenerateMetricError{Metric: "sharpe", Reason: "exceeds the floating-point range"})
	} else if m.Sharpe == nil {
		m.Notices = append(m.Notices, domain.DegenerateMetricError{Metric: "sharpe", Reason: "volatility is zero"})
	}
	if m.Sortino != nil && !finite(*m.Sortino) {
		m.Sortino = nil
		m.Notices = append(m.Notices, domain.DegenerateMetricError{Metric: "sortino", Reason: "exceeds the floating-point range"})
	} else if m.Sortino == nil {
		reason := "no period returned less than the risk-free rate"
		if len(returns) < 2 {
			reason = "at least two returns are required"
		}
		m.Notices = append(m.Notices, domain.DegenerateMetricError{Metric: "sortino", Reason: reason})
	}

	c.log.Debug().
		Int("points", m.Points).
		Int("periods_per_year", periodsPerYear).
		Float64("total_return", total).
		Float64("volatility", volatility).
		Msg("Computed performance metrics")

	return m, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

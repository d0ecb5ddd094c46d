package formulas

import (
	"math"
)

// ZeroVolatilityEpsilon is the volatility below which risk-adjusted ratios
// are treated as undefined
const ZeroVolatilityEpsilon = 1e-12

// CalculateSharpeRatio calculates the Sharpe Ratio from annualized figures
//
// Sharpe Ratio Formula:
//
//	Sharpe = (Annualized Return - Risk-free Rate) / Annualized Volatility
//
// Returns nil when volatility is zero, where the ratio is undefined.
func CalculateSharpeRatio(annualizedReturn, riskFreeRate, annualizedVolatility float64) *float64 {
	if math.Abs(annualizedVolatility) < ZeroVolatilityEpsilon {
		return nil
	}
	sharpe := (annualizedReturn - riskFreeRate) / annualizedVolatility
	return &sharpe
}

// CalculateSortinoRatio calculates the Sortino Ratio (downside deviation version of Sharpe)
// Only considers downside volatility (returns below the periodic risk-free rate)
//
// Sortino Formula:
//
//	Sortino = (Annualized Return - Risk-free Rate) / Annualized Downside Deviation
//	Downside Deviation = sqrt(mean of squared shortfalls below the periodic risk-free rate)
//
// Returns nil when there is no downside, where the ratio is undefined.
func CalculateSortinoRatio(returns []float64, annualizedReturn, riskFreeRate float64, periodsPerYear int) *float64 {
	if len(returns) < 2 || periodsPerYear <= 0 {
		return nil
	}

	periodicFloor := riskFreeRate / float64(periodsPerYear)

	var shortfallSquaredSum float64
	for _, ret := range returns {
		if ret < periodicFloor {
			shortfall := ret - periodicFloor
			shortfallSquaredSum += shortfall * shortfall
		}
	}

	downside := math.Sqrt(shortfallSquaredSum/float64(len(returns))) * math.Sqrt(float64(periodsPerYear))
	if downside < ZeroVolatilityEpsilon {
		return nil
	}

	sortino := (annualizedReturn - riskFreeRate) / downside
	return &sortino
}

// Package formulas provides the statistical building blocks used by the
// performance and risk calculations.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values.
// Fewer than two observations carry no dispersion and yield 0.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// CalculateReturns converts values to periodic simple returns
// Returns[i] = (Value[i+1] - Value[i]) / Value[i]
func CalculateReturns(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			returns[i-1] = (values[i] - values[i-1]) / values[i-1]
		}
	}

	return returns
}

// AnnualizedVolatility scales the standard deviation of periodic returns by
// the square root of the number of periods per year
//
// Formula: StdDev(returns) × sqrt(periodsPerYear)
func AnnualizedVolatility(returns []float64, periodsPerYear int) float64 {
	if len(returns) == 0 || periodsPerYear <= 0 {
		return 0
	}
	return StdDev(returns) * math.Sqrt(float64(periodsPerYear))
}

// TotalReturn calculates last/first - 1 for a value series
func TotalReturn(values []float64) float64 {
	if len(values) < 2 || values[0] == 0 {
		return 0
	}
	return values[len(values)-1]/values[0] - 1
}

// AnnualizeReturn compounds a total return earned over the given number of
// periods to a one-year basis
//
// Formula: (1 + total)^(periodsPerYear / periods) - 1
func AnnualizeReturn(totalReturn float64, periods int, periodsPerYear int) float64 {
	if periods <= 0 || periodsPerYear <= 0 {
		return 0
	}
	growth := 1 + totalReturn
	if growth <= 0 {
		// Total loss cannot be compounded
		return -1
	}
	return math.Pow(growth, float64(periodsPerYear)/float64(periods)) - 1
}

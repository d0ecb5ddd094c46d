package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMaxDrawdown(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected *float64
	}{
		{"too short", []float64{100}, nil},
		{"monotonic increase", []float64{100, 110, 121}, ptr(0)},
		{"halved then recovered", []float64{100, 50, 100}, ptr(0.5)},
		{"deepest trough wins", []float64{100, 90, 120, 60, 130}, ptr(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMaxDrawdown(tt.values)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.InDelta(t, *tt.expected, *result, 1e-12)
		})
	}
}

func TestCalculateDrawdownMetrics(t *testing.T) {
	metrics := CalculateDrawdownMetrics([]float64{100, 120, 90, 108})
	require.NotNil(t, metrics)

	assert.InDelta(t, 0.25, metrics.MaxDrawdown, 1e-12)
	assert.InDelta(t, 0.1, metrics.CurrentDrawdown, 1e-12)
	assert.Equal(t, 2, metrics.PeriodsSincePeak)
	assert.Equal(t, 120.0, metrics.PeakValue)
}

func TestCalculateSharpeRatio(t *testing.T) {
	assert.Nil(t, CalculateSharpeRatio(0.1, 0, 0), "zero volatility is undefined")

	sharpe := CalculateSharpeRatio(0.1, 0.02, 0.2)
	require.NotNil(t, sharpe)
	assert.InDelta(t, 0.4, *sharpe, 1e-12)
}

func TestCalculateSortinoRatio(t *testing.T) {
	assert.Nil(t, CalculateSortinoRatio([]float64{0.01, 0.02, 0.03}, 0.2, 0, 12), "no downside")
	assert.Nil(t, CalculateSortinoRatio([]float64{-0.01}, 0.2, 0, 12), "too few returns")

	returns := []float64{0.02, -0.02}
	sortino := CalculateSortinoRatio(returns, 0.05, 0, 12)
	require.NotNil(t, sortino)
	downside := math.Sqrt(0.0004/2) * math.Sqrt(12)
	assert.InDelta(t, 0.05/downside, *sortino, 1e-12)
}

func ptr(v float64) *float64 {
	return &v
}

package formulas

// DrawdownMetrics represents drawdown analysis results
type DrawdownMetrics struct {
	MaxDrawdown      float64 `json:"max_drawdown"`     // Largest peak-to-trough decline as a positive fraction (0.25 = 25%)
	CurrentDrawdown  float64 `json:"current_drawdown"` // Decline of the last value from the running peak
	PeriodsSincePeak int     `json:"periods_since_peak"`
	PeakValue        float64 `json:"peak_value"`
}

// CalculateMaxDrawdown calculates the maximum drawdown of a value series
//
// Drawdown Formula:
//
//	Drawdown = (Peak Value - Current Value) / Peak Value
//	Max Drawdown = Maximum of all drawdowns
//
// Returns nil when fewer than two values are supplied.
func CalculateMaxDrawdown(values []float64) *float64 {
	metrics := CalculateDrawdownMetrics(values)
	if metrics == nil {
		return nil
	}
	return &metrics.MaxDrawdown
}

// CalculateDrawdownMetrics calculates max drawdown together with the
// current drawdown and the distance to the last peak
func CalculateDrawdownMetrics(values []float64) *DrawdownMetrics {
	if len(values) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	peak := values[0]
	peakIndex := 0

	for i, value := range values {
		if value > peak {
			peak = value
			peakIndex = i
		}

		if peak > 0 {
			drawdown := (peak - value) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	current := 0.0
	if peak > 0 {
		current = (peak - values[len(values)-1]) / peak
	}

	return &DrawdownMetrics{
		MaxDrawdown:      maxDrawdown,
		CurrentDrawdown:  current,
		PeriodsSincePeak: len(values) - 1 - peakIndex,
		PeakValue:        peak,
	}
}

package indicator

import (
	"math"

	"MarketPulse/internal/model"
)

// RollingMean computes the simple moving average of values over the given
// window. Cells before index window-1 are undefined.
func RollingMean(values []float64, window int) []model.Value {
	out := make([]model.Value, len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = model.Val(sum / float64(window))
		}
	}
	return out
}

// RollingStd computes the rolling sample standard deviation (n-1
// denominator) of values over the given window. Requires window >= 2.
func RollingStd(values []float64, window int) []model.Value {
	out := make([]model.Value, len(values))
	if window < 2 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += values[j]
		}
		mean /= float64(window)

		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		variance /= float64(window - 1)
		out[i] = model.Val(math.Sqrt(variance))
	}
	return out
}

package analysis

import (
	"math"
	"time"

	"MarketPulse/internal/model"
)

// PriceStats summarizes the raw close series for display.
type PriceStats struct {
	Current    float64
	ChangePct  float64 // vs previous close, percent
	High       float64
	Low        float64
	Average    float64
	Volatility float64 // sample std-dev of daily returns
}

// Result is the outcome of one per-asset analysis run.
type Result struct {
	Name      string
	Symbol    string
	AssetType string
	Timestamp time.Time

	Series      *model.IndicatorSeries
	Signal      model.Signal
	Stats       PriceStats
	Predictions []float64
	Alerts      []model.Alert
}

// statsFromCloses computes the display statistics for a close sequence.
func statsFromCloses(closes []float64) PriceStats {
	st := PriceStats{}
	n := len(closes)
	if n == 0 {
		return st
	}

	st.Current = closes[n-1]
	st.High = closes[0]
	st.Low = closes[0]
	sum := 0.0
	for _, c := range closes {
		if c > st.High {
			st.High = c
		}
		if c < st.Low {
			st.Low = c
		}
		sum += c
	}
	st.Average = sum / float64(n)

	if n >= 2 && closes[n-2] != 0 {
		st.ChangePct = (closes[n-1] - closes[n-2]) / closes[n-2] * 100
	}

	// Sample standard deviation of day-over-day returns.
	var returns []float64
	for i := 1; i < n; i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	if len(returns) >= 2 {
		mean := 0.0
		for _, r := range returns {
			mean += r
		}
		mean /= float64(len(returns))
		variance := 0.0
		for _, r := range returns {
			d := r - mean
			variance += d * d
		}
		st.Volatility = math.Sqrt(variance / float64(len(returns)-1))
	}
	return st
}

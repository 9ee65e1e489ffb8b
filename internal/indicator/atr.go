package indicator

import (
	"math"

	"MarketPulse/internal/model"
)

// TrueRanges computes the per-bar true range: the largest of high-low,
// |high-prevClose| and |low-prevClose|. The first bar has no prior close,
// so its true range is just high-low.
func TrueRanges(bars []model.OHLCV) []float64 {
	tr := make([]float64, len(bars))
	for i, b := range bars {
		if i == 0 {
			tr[i] = b.High - b.Low
			continue
		}
		prevClose := bars[i-1].Close
		tr[i] = math.Max(b.High-b.Low,
			math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
	}
	return tr
}

// ATR computes the Average True Range: the rolling mean of the true range
// over the given period. Cells before index period-1 are undefined.
func ATR(bars []model.OHLCV, period int) []model.Value {
	return RollingMean(TrueRanges(bars), period)
}

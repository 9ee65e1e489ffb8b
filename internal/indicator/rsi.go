package indicator

import "MarketPulse/internal/model"

// RollingRSI computes the Relative Strength Index using rolling arithmetic
// means of gains and losses over the trailing period (not Wilder smoothing).
// The first delta exists at index 1, so cells before index period are
// undefined. A window with zero total loss yields RSI=100, the limit of
// 100-100/(1+RS) as RS goes to infinity.
func RollingRSI(closes []float64, period int) []model.Value {
	out := make([]model.Value, len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}
	for i := period; i < len(closes); i++ {
		var gain, loss float64
		for j := i - period + 1; j <= i; j++ {
			delta := closes[j] - closes[j-1]
			if delta > 0 {
				gain += delta
			} else {
				loss -= delta
			}
		}
		gain /= float64(period)
		loss /= float64(period)

		if loss == 0 {
			out[i] = model.Val(100.0)
			continue
		}
		rs := gain / loss
		out[i] = model.Val(100.0 - 100.0/(1.0+rs))
	}
	return out
}

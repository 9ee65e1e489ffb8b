package indicator

import "MarketPulse/internal/model"

// BollingerBands computes the upper and lower Bollinger bands: the rolling
// mean plus/minus stdDev rolling sample standard deviations. The middle
// band is not exposed. Cells before index period-1 are undefined.
func BollingerBands(closes []float64, period int, stdDev float64) (upper, lower []model.Value) {
	upper = make([]model.Value, len(closes))
	lower = make([]model.Value, len(closes))

	mean := RollingMean(closes, period)
	std := RollingStd(closes, period)

	for i := range closes {
		if !mean[i].Valid || !std[i].Valid {
			continue
		}
		upper[i] = model.Val(mean[i].V + stdDev*std[i].V)
		lower[i] = model.Val(mean[i].V - stdDev*std[i].V)
	}
	return upper, lower
}

package indicator

import "MarketPulse/internal/model"

// EWM computes an exponentially weighted moving average with span-based
// decay (alpha = 2/(span+1)) seeded by the cumulative-mean convention:
// every cell is a weighted mean of all history so far, so the column is
// defined from the first bar onward and converges as history accumulates.
func EWM(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if span <= 0 {
		copy(out, values)
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	decay := 1.0 - alpha

	var num, den float64
	for i, v := range values {
		num = v + decay*num
		den = 1.0 + decay*den
		out[i] = num / den
	}
	return out
}

// MACDColumns computes the MACD line, signal line and histogram for the
// given closes. The intermediate fast/slow EMA series are not retained.
func MACDColumns(closes []float64, fast, slow, signal int) (macd, signalLine, histogram []model.Value) {
	n := len(closes)
	macd = make([]model.Value, n)
	signalLine = make([]model.Value, n)
	histogram = make([]model.Value, n)
	if n == 0 {
		return macd, signalLine, histogram
	}

	emaFast := EWM(closes, fast)
	emaSlow := EWM(closes, slow)

	macdRaw := make([]float64, n)
	for i := 0; i < n; i++ {
		macdRaw[i] = emaFast[i] - emaSlow[i]
	}
	signalRaw := EWM(macdRaw, signal)

	for i := 0; i < n; i++ {
		macd[i] = model.Val(macdRaw[i])
		signalLine[i] = model.Val(signalRaw[i])
		histogram[i] = model.Val(macdRaw[i] - signalRaw[i])
	}
	return macd, signalLine, histogram
}

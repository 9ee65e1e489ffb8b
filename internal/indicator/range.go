package indicator

import (
	"errors"
	"math"

	"MarketPulse/internal/model"
)

// TrailingRange scans the most recent n bars and returns the highest high
// and lowest low. With fewer than n bars it scans everything available.
func TrailingRange(bars []model.OHLCV, n int) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	start := len(bars) - n
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < len(bars); i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}

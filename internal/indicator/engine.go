package indicator

import "MarketPulse/internal/model"

// Default periods, matching the conventional daily-chart settings.
const (
	MAShort  = 20
	MAMedium = 50
	MALong   = 200

	RSIPeriod = 14

	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9

	BollingerPeriod = 20
	BollingerStdDev = 2.0

	ATRPeriod = 14
)

// Analyze computes every indicator column for the given bar sequence and
// returns the augmented series. It never fails on short input: columns
// simply stay undefined until enough history has accumulated, and the
// consumers skip rules whose inputs are undefined.
func Analyze(bars []model.OHLCV) *model.IndicatorSeries {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	s := &model.IndicatorSeries{Bars: bars}
	s.MA20 = RollingMean(closes, MAShort)
	s.MA50 = RollingMean(closes, MAMedium)
	s.MA200 = RollingMean(closes, MALong)
	s.RSI = RollingRSI(closes, RSIPeriod)
	s.MACD, s.SignalLine, s.MACDHistogram = MACDColumns(closes, MACDFast, MACDSlow, MACDSignal)
	s.BBUpper, s.BBLower = BollingerBands(closes, BollingerPeriod, BollingerStdDev)
	s.ATR = ATR(bars, ATRPeriod)
	return s
}

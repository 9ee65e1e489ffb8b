package strategy

import (
	"MarketPulse/internal/indicator"
	"MarketPulse/internal/model"
)

// MinBars is the minimum history required before a signal other than HOLD
// can be produced.
const MinBars = 50

const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0
)

// Generate produces one trading signal from the last two rows of the
// series. Four independent rules each contribute at most one BUY or SELL
// vote; the strict majority wins and any tie (including no votes at all)
// is HOLD. Rules whose indicator inputs are still undefined are skipped.
// The function is stateless: identical inputs always yield the same signal.
func Generate(s *model.IndicatorSeries) model.Signal {
	if s == nil || s.Len() < MinBars {
		return model.SignalHold
	}

	cur := s.Len() - 1
	prev := cur - 1
	close := s.Bars[cur].Close

	var buy, sell int

	// Trend: close vs MA50 vs MA200 alignment.
	if s.MA50[cur].Valid && s.MA200[cur].Valid {
		switch {
		case close > s.MA50[cur].V && s.MA50[cur].V > s.MA200[cur].V:
			buy++
		case close < s.MA50[cur].V && s.MA50[cur].V < s.MA200[cur].V:
			sell++
		}
	}

	// RSI: oversold / overbought extremes.
	if s.RSI[cur].Valid {
		switch {
		case s.RSI[cur].V < rsiOversold:
			buy++
		case s.RSI[cur].V > rsiOverbought:
			sell++
		}
	}

	// MACD: signal-line crossover between the previous and current bar.
	switch {
	case indicator.CrossAbove(s.MACD[prev], s.SignalLine[prev], s.MACD[cur], s.SignalLine[cur]):
		buy++
	case indicator.CrossBelow(s.MACD[prev], s.SignalLine[prev], s.MACD[cur], s.SignalLine[cur]):
		sell++
	}

	// Bollinger: close outside the bands.
	if s.BBUpper[cur].Valid && s.BBLower[cur].Valid {
		switch {
		case close < s.BBLower[cur].V:
			buy++
		case close > s.BBUpper[cur].V:
			sell++
		}
	}

	switch {
	case buy > sell:
		return model.SignalBuy
	case sell > buy:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}

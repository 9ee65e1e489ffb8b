package alert

import (
	"fmt"
	"time"

	"MarketPulse/internal/indicator"
	"MarketPulse/internal/model"
)

const (
	// MinBars is the minimum history before any check runs.
	MinBars = 50

	rsiOversold   = 30.0
	rsiOverbought = 70.0

	// levelLookback is how many trailing bars define support/resistance
	// when the caller supplies no explicit levels.
	levelLookback = 50

	// proximityRatio: a close within this fraction of the
	// support-resistance range of either boundary raises a price alert.
	proximityRatio = 0.10

	// volatilityRatio: ATR above this fraction of the close is extreme.
	volatilityRatio = 0.5
)

// PriceLevels is an optional caller-supplied support/resistance override.
type PriceLevels struct {
	Support    float64
	Resistance float64
}

// Evaluator scans indicator series for transition events and records the
// resulting alerts in its store. Each check compares the latest bar
// against the one before it, so a persisting condition alerts once per
// crossing rather than on every bar. Repeated CheckAll calls on the same
// unchanged series do duplicate alerts; the store keeps them all and the
// caller decides how to dedupe across calls.
type Evaluator struct {
	store *Store
}

// NewEvaluator creates an evaluator that writes into the given store.
func NewEvaluator(store *Store) *Evaluator {
	return &Evaluator{store: store}
}

// Store returns the underlying alert store.
func (e *Evaluator) Store() *Store { return e.store }

// CheckAll runs every rule against the latest two rows of the series, in
// fixed order: BUY checks, SELL checks, price-level, volatility. Series
// shorter than MinBars are a no-op. A nil levels derives support and
// resistance from the trailing 50-bar low/high.
func (e *Evaluator) CheckAll(asset string, s *model.IndicatorSeries, levels *PriceLevels) {
	if s == nil || s.Len() < MinBars {
		return
	}
	cur := s.Len() - 1
	prev := cur - 1

	e.checkBuySignals(asset, s, prev, cur)
	e.checkSellSignals(asset, s, prev, cur)
	e.checkPriceLevels(asset, s, levels)
	e.checkVolatility(asset, s)
}

func (e *Evaluator) checkBuySignals(asset string, s *model.IndicatorSeries, prev, cur int) {
	close := s.Bars[cur].Close

	// RSI entered oversold territory.
	if s.RSI[cur].Valid && s.RSI[prev].Valid &&
		s.RSI[cur].V < rsiOversold && s.RSI[prev].V >= rsiOversold {
		e.emit(asset, model.AlertBuy, model.LevelMedium,
			fmt.Sprintf("RSI entered oversold territory (%.1f)", s.RSI[cur].V), model.Val(close))
	}

	// Golden cross: MA20 crossed above MA50.
	if indicator.CrossAbove(s.MA20[prev], s.MA50[prev], s.MA20[cur], s.MA50[cur]) {
		e.emit(asset, model.AlertBuy, model.LevelMedium,
			"golden cross: MA20 crossed above MA50", model.Val(close))
	}

	// MACD bullish crossover.
	if indicator.CrossAbove(s.MACD[prev], s.SignalLine[prev], s.MACD[cur], s.SignalLine[cur]) {
		e.emit(asset, model.AlertBuy, model.LevelLow,
			"MACD crossed above signal line", model.Val(close))
	}

	// Price dropped through the lower Bollinger band.
	if s.BBLower[cur].Valid && s.BBLower[prev].Valid &&
		close < s.BBLower[cur].V && s.Bars[prev].Close >= s.BBLower[prev].V {
		e.emit(asset, model.AlertBuy, model.LevelMedium,
			fmt.Sprintf("price dropped below lower Bollinger band (%.2f)", s.BBLower[cur].V), model.Val(close))
	}
}

func (e *Evaluator) checkSellSignals(asset string, s *model.IndicatorSeries, prev, cur int) {
	close := s.Bars[cur].Close

	// RSI entered overbought territory.
	if s.RSI[cur].Valid && s.RSI[prev].Valid &&
		s.RSI[cur].V > rsiOverbought && s.RSI[prev].V <= rsiOverbought {
		e.emit(asset, model.AlertSell, model.LevelMedium,
			fmt.Sprintf("RSI entered overbought territory (%.1f)", s.RSI[cur].V), model.Val(close))
	}

	// Death cross: MA20 crossed below MA50.
	if indicator.CrossBelow(s.MA20[prev], s.MA50[prev], s.MA20[cur], s.MA50[cur]) {
		e.emit(asset, model.AlertSell, model.LevelMedium,
			"death cross: MA20 crossed below MA50", model.Val(close))
	}

	// MACD bearish crossover.
	if indicator.CrossBelow(s.MACD[prev], s.SignalLine[prev], s.MACD[cur], s.SignalLine[cur]) {
		e.emit(asset, model.AlertSell, model.LevelLow,
			"MACD crossed below signal line", model.Val(close))
	}

	// Price broke through the upper Bollinger band.
	if s.BBUpper[cur].Valid && s.BBUpper[prev].Valid &&
		close > s.BBUpper[cur].V && s.Bars[prev].Close <= s.BBUpper[prev].V {
		e.emit(asset, model.AlertSell, model.LevelMedium,
			fmt.Sprintf("price broke above upper Bollinger band (%.2f)", s.BBUpper[cur].V), model.Val(close))
	}
}

// checkPriceLevels alerts when the close sits close to support or
// resistance: within proximityRatio of the support-resistance range of a
// boundary, strictly on the inside of it. Resistance is checked before
// support; the two distances sum to the full range, so at most one
// boundary can qualify.
func (e *Evaluator) checkPriceLevels(asset string, s *model.IndicatorSeries, levels *PriceLevels) {
	support, resistance := 0.0, 0.0
	if levels != nil {
		support, resistance = levels.Support, levels.Resistance
	} else {
		high, low, err := indicator.TrailingRange(s.Bars, levelLookback)
		if err != nil {
			return
		}
		support, resistance = low, high
	}

	rng := resistance - support
	if rng <= 0 {
		return
	}
	zone := rng * proximityRatio
	close := s.Bars[s.Len()-1].Close

	if d := resistance - close; d > 0 && d <= zone {
		e.emit(asset, model.AlertPriceLevel, model.LevelHigh,
			fmt.Sprintf("price approaching resistance at %.2f", resistance), model.Val(close))
	}
	if d := close - support; d > 0 && d <= zone {
		e.emit(asset, model.AlertPriceLevel, model.LevelHigh,
			fmt.Sprintf("price approaching support at %.2f", support), model.Val(close))
	}
}

// checkVolatility alerts when ATR is extreme relative to price. A
// non-positive close makes the ratio meaningless, so it is defined as 0.
func (e *Evaluator) checkVolatility(asset string, s *model.IndicatorSeries) {
	cur := s.Len() - 1
	if !s.ATR[cur].Valid {
		return
	}
	close := s.Bars[cur].Close
	ratio := 0.0
	if close > 0 {
		ratio = s.ATR[cur].V / close
	}
	if ratio > volatilityRatio {
		e.emit(asset, model.AlertVolatility, model.LevelCritical,
			fmt.Sprintf("extreme volatility: ATR is %.0f%% of price", ratio*100), model.Val(close))
	}
}

func (e *Evaluator) emit(asset string, typ model.AlertType, level model.AlertLevel, msg string, price model.Value) {
	e.store.Record(model.Alert{
		Asset:     asset,
		Type:      typ,
		Level:     level,
		Message:   msg,
		Price:     price,
		Timestamp: time.Now(),
	})
}

package model

// Value is a single indicator cell. Valid is false while the bar index has
// not accumulated enough history for the computation to be defined. The
// zero Value is undefined, so freshly allocated columns start out undefined.
type Value struct {
	V     float64
	Valid bool
}

// Val wraps a defined indicator value.
func Val(v float64) Value { return Value{V: v, Valid: true} }

// Or returns the value, or def when the cell is undefined.
func (v Value) Or(def float64) float64 {
	if !v.Valid {
		return def
	}
	return v.V
}

// IndicatorSeries extends a bar sequence with computed indicator columns.
// Every column has exactly one cell per bar.
type IndicatorSeries struct {
	Bars []OHLCV

	MA20  []Value
	MA50  []Value
	MA200 []Value

	RSI []Value

	MACD          []Value
	SignalLine    []Value
	MACDHistogram []Value

	BBUpper []Value
	BBLower []Value

	ATR []Value
}

// Len returns the number of bars in the series.
func (s *IndicatorSeries) Len() int { return len(s.Bars) }

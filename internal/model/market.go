package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds raw price data for one asset, ascending by bar time.
type PriceSeries struct {
	Symbol    string
	Name      string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Closes extracts the close column from the bar sequence.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

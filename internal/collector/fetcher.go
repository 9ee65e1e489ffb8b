package collector

import "MarketPulse/internal/model"

// Fetcher defines the interface for fetching daily market data.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}

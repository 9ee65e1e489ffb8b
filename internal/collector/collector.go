package collector

import (
	"fmt"
	"math"
	"time"

	"MarketPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.OHLCV
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(100, days), nil
}

// GenerateMockBars builds a mildly trending synthetic bar sequence.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches and validates the raw price series for one asset.
// Indicator computation happens downstream; the collector is the fail-fast
// boundary where malformed input is rejected before it can reach the math.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches the daily series for the asset and validates it.
func (c *Collector) Collect(symbol, name string, days int) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, days)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}
	if err := ValidateBars(bars); err != nil {
		return nil, fmt.Errorf("validate series for %s: %w", symbol, err)
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Name:      name,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// ValidateBars rejects malformed series: empty input, non-ascending or
// duplicate bar times, and non-finite or negative prices.
func ValidateBars(bars []model.OHLCV) error {
	if len(bars) == 0 {
		return fmt.Errorf("empty series")
	}
	for i, b := range bars {
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			return fmt.Errorf("bar %d: time %s not after previous bar %s",
				i, b.Time.Format("2006-01-02"), bars[i-1].Time.Format("2006-01-02"))
		}
		for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("bar %d: non-finite value", i)
			}
		}
		if b.Close < 0 {
			return fmt.Errorf("bar %d: negative close %.4f", i, b.Close)
		}
	}
	return nil
}

package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"MarketPulse/internal/model"
)

// CoinGeckoFetcher implements Fetcher for cryptocurrencies using the
// CoinGecko market-chart API. CoinGecko's daily chart only exposes close
// and volume, so open is synthesized from the previous close and high/low
// collapse onto the close.
type CoinGeckoFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewCoinGeckoFetcher creates a new CoinGecko fetcher with optional proxy support.
func NewCoinGeckoFetcher(proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoFetcher{
		BaseURL: "https://api.coingecko.com/api/v3",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// marketChart is the response structure from the CoinGecko chart API.
// Each entry is a [timestampMillis, value] pair.
type marketChart struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

func (f *CoinGeckoFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily",
		f.BaseURL, url.PathEscape(symbol), days)

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart marketChart
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}
	if len(chart.Prices) == 0 {
		return nil, fmt.Errorf("coingecko: no data returned for %s", symbol)
	}

	bars := make([]model.OHLCV, 0, len(chart.Prices))
	for i, p := range chart.Prices {
		ts := time.UnixMilli(int64(p[0]))
		close := p[1]
		open := close
		if i > 0 {
			open = chart.Prices[i-1][1]
		}
		high, low := close, close
		if open > high {
			high = open
		}
		if open < low {
			low = open
		}
		var volume float64
		if i < len(chart.TotalVolumes) {
			volume = chart.TotalVolumes[i][1]
		}
		bars = append(bars, model.OHLCV{
			Time:   ts,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

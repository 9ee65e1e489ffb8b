package recorder

import "MarketPulse/internal/model"

// RunSnapshot holds the outcome of one per-asset analysis run: the latest
// indicator row, the combined signal and the optional forecast endpoint.
type RunSnapshot struct {
	Symbol    string
	Name      string
	AssetType string
	Price     float64
	Signal    model.Signal

	MA20          model.Value
	MA50          model.Value
	MA200         model.Value
	RSI           model.Value
	MACD          model.Value
	SignalLine    model.Value
	MACDHistogram model.Value
	BBUpper       model.Value
	BBLower       model.Value
	ATR           model.Value

	PredictedPrice model.Value // forecast endpoint, display-only
}

// Recorder persists analysis history.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	RecordAlerts(alerts []model.Alert) error
	Close() error
}

package model

import "time"

// AlertType indicates what kind of condition produced an alert.
type AlertType string

const (
	AlertBuy        AlertType = "BUY"
	AlertSell       AlertType = "SELL"
	AlertPriceLevel AlertType = "PRICE_LEVEL"
	AlertVolatility AlertType = "VOLATILITY"
)

// AlertLevel is the alert severity, ordered from least to most urgent.
type AlertLevel int

const (
	LevelLow AlertLevel = iota
	LevelMedium
	LevelHigh
	LevelCritical
)

// String returns the plain severity label. Display decoration belongs to
// the notifier formatter, not here.
func (l AlertLevel) String() string {
	switch l {
	case LevelLow:
		return "LOW"
	case LevelMedium:
		return "MEDIUM"
	case LevelHigh:
		return "HIGH"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Alert is one emitted alert record. Immutable once created.
type Alert struct {
	Asset     string
	Type      AlertType
	Level     AlertLevel
	Message   string
	Price     Value // optional: not every alert carries a price
	Timestamp time.Time
}

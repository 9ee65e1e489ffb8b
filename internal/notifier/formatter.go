package notifier

import (
	"fmt"
	"strings"
	"time"

	"MarketPulse/internal/analysis"
	"MarketPulse/internal/model"
)

// levelGlyph decorates a severity for chat display. The AlertLevel enum
// itself stays plain text.
func levelGlyph(l model.AlertLevel) string {
	switch l {
	case model.LevelLow:
		return "ℹ️"
	case model.LevelMedium:
		return "⚠️"
	case model.LevelHigh:
		return "🔴"
	case model.LevelCritical:
		return "🚨"
	default:
		return "•"
	}
}

func signalGlyph(s model.Signal) string {
	switch s {
	case model.SignalBuy:
		return "📈"
	case model.SignalSell:
		return "📉"
	default:
		return "⏸"
	}
}

// FormatAnalysisReport renders the full multi-asset report.
func FormatAnalysisReport(results []*analysis.Result, alertReport string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🤖 <b>MarketPulse analysis report</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))

	for _, res := range results {
		b.WriteString(FormatAssetSummary(res))
		b.WriteString("\n")
	}

	b.WriteString("────────────────────\n")
	b.WriteString(alertReport)
	return b.String()
}

// FormatAssetSummary renders one asset's section of the report.
func FormatAssetSummary(res *analysis.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🏷 <b>%s</b> (%s)\n", res.Name, strings.ToUpper(res.AssetType)))
	b.WriteString(fmt.Sprintf("  price: $%.2f (%+.2f%%)\n", res.Stats.Current, res.Stats.ChangePct))
	b.WriteString(fmt.Sprintf("  %s signal: %s\n", signalGlyph(res.Signal), res.Signal))

	s := res.Series
	if n := s.Len(); n > 0 {
		last := n - 1
		if s.RSI[last].Valid {
			b.WriteString(fmt.Sprintf("  RSI: %.1f", s.RSI[last].V))
			if s.MACD[last].Valid {
				b.WriteString(fmt.Sprintf(" | MACD: %+.3f", s.MACD[last].V))
			}
			b.WriteString("\n")
		}
		if s.MA50[last].Valid && s.MA200[last].Valid {
			b.WriteString(fmt.Sprintf("  MA50: %.2f | MA200: %.2f\n", s.MA50[last].V, s.MA200[last].V))
		}
	}

	b.WriteString(fmt.Sprintf("  range: %.2f – %.2f | volatility: %.4f\n",
		res.Stats.Low, res.Stats.High, res.Stats.Volatility))

	if len(res.Predictions) > 0 {
		final := res.Predictions[len(res.Predictions)-1]
		changePred := 0.0
		if res.Stats.Current != 0 {
			changePred = (final - res.Stats.Current) / res.Stats.Current * 100
		}
		b.WriteString(fmt.Sprintf("  🔮 %d-day forecast: $%.2f (%+.2f%%)\n",
			len(res.Predictions), final, changePred))
	}

	if len(res.Alerts) > 0 {
		b.WriteString("  alerts:\n")
		for _, a := range res.Alerts {
			b.WriteString(fmt.Sprintf("    %s %s\n", levelGlyph(a.Level), a.Message))
		}
	}
	return b.String()
}

// FormatAlertDigest renders a short list of alerts for chat delivery.
func FormatAlertDigest(alerts []model.Alert) string {
	if len(alerts) == 0 {
		return "No alerts recorded."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 <b>Latest alerts</b> (%d)\n\n", len(alerts)))
	for _, a := range alerts {
		b.WriteString(fmt.Sprintf("%s [%s] %s: %s", levelGlyph(a.Level), a.Level, a.Asset, a.Message))
		if a.Price.Valid {
			b.WriteString(fmt.Sprintf(" @ $%.2f", a.Price.V))
		}
		b.WriteString(fmt.Sprintf(" (%s)\n", a.Timestamp.Format("01-02 15:04")))
	}
	return b.String()
}

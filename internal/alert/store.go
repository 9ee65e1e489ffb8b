package alert

import (
	"fmt"
	"strings"
	"time"

	"MarketPulse/internal/model"
)

// reportTail is how many recent alerts per asset the report renders.
const reportTail = 5

// Store accumulates alerts for one analysis session, in emission order.
// It is deliberately unsynchronized: each session owns its store and the
// design assumes single-writer, single-reader access per instance.
type Store struct {
	alerts []model.Alert
}

// NewStore creates an empty alert store.
func NewStore() *Store { return &Store{} }

// Record appends one alert. O(1), order-preserving.
func (st *Store) Record(a model.Alert) {
	st.alerts = append(st.alerts, a)
}

// Len returns the number of stored alerts.
func (st *Store) Len() int { return len(st.alerts) }

// All returns a copy of every stored alert in append order.
func (st *Store) All() []model.Alert {
	out := make([]model.Alert, len(st.alerts))
	copy(out, st.alerts)
	return out
}

// Latest returns the n most recently appended alerts, still in append
// order. With fewer than n alerts it returns everything.
func (st *Store) Latest(n int) []model.Alert {
	if n <= 0 {
		return nil
	}
	start := len(st.alerts) - n
	if start < 0 {
		start = 0
	}
	out := make([]model.Alert, len(st.alerts)-start)
	copy(out, st.alerts[start:])
	return out
}

// Prune drops alerts whose timestamp is older than now minus maxAge,
// preserving the relative order of the survivors. Returns the number of
// alerts removed. Prune(0) clears everything already recorded.
func (st *Store) Prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	kept := st.alerts[:0]
	for _, a := range st.alerts {
		if a.Timestamp.After(cutoff) {
			kept = append(kept, a)
		}
	}
	removed := len(st.alerts) - len(kept)
	st.alerts = kept
	return removed
}

// Report renders a text digest: alerts grouped by asset in first-seen
// order, the last few per asset with severity label and price.
func (st *Store) Report() string {
	if len(st.alerts) == 0 {
		return "No alerts recorded."
	}

	var order []string
	grouped := make(map[string][]model.Alert)
	for _, a := range st.alerts {
		if _, seen := grouped[a.Asset]; !seen {
			order = append(order, a.Asset)
		}
		grouped[a.Asset] = append(grouped[a.Asset], a)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Alert report (%d alerts)\n", len(st.alerts))
	for _, asset := range order {
		alerts := grouped[asset]
		if len(alerts) > reportTail {
			alerts = alerts[len(alerts)-reportTail:]
		}
		fmt.Fprintf(&b, "\n%s:\n", asset)
		for _, a := range alerts {
			fmt.Fprintf(&b, "  [%s] %s: %s", a.Level, a.Type, a.Message)
			if a.Price.Valid {
				fmt.Fprintf(&b, " @ $%.2f", a.Price.V)
			}
			fmt.Fprintf(&b, " (%s)\n", a.Timestamp.Format("2006-01-02 15:04"))
		}
	}
	return b.String()
}

package alert

import (
	"strings"
	"testing"
	"time"

	"MarketPulse/internal/model"
)

// evalSeries builds an n-bar series with flat closes and every indicator
// cell undefined, so each test arms only the rule it exercises.
func evalSeries(n int, close float64) *model.IndicatorSeries {
	s := &model.IndicatorSeries{
		Bars:          make([]model.OHLCV, n),
		MA20:          make([]model.Value, n),
		MA50:          make([]model.Value, n),
		MA200:         make([]model.Value, n),
		RSI:           make([]model.Value, n),
		MACD:          make([]model.Value, n),
		SignalLine:    make([]model.Value, n),
		MACDHistogram: make([]model.Value, n),
		BBUpper:       make([]model.Value, n),
		BBLower:       make([]model.Value, n),
		ATR:           make([]model.Value, n),
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range s.Bars {
		s.Bars[i] = model.OHLCV{Time: base.AddDate(0, 0, i), Open: close, High: close, Low: close, Close: close, Volume: 1}
	}
	return s
}

func newTestEvaluator() (*Evaluator, *Store) {
	st := NewStore()
	return NewEvaluator(st), st
}

func TestCheckAll_InsufficientHistory(t *testing.T) {
	e, st := newTestEvaluator()
	s := evalSeries(MinBars-1, 100)
	s.RSI[s.Len()-1] = model.Val(10)
	s.RSI[s.Len()-2] = model.Val(50)
	e.CheckAll("BTC", s, nil)
	if st.Len() != 0 {
		t.Errorf("short series must be a no-op, got %d alerts", st.Len())
	}
	e.CheckAll("BTC", nil, nil)
	if st.Len() != 0 {
		t.Errorf("nil series must be a no-op, got %d alerts", st.Len())
	}
}

func TestCheckAll_RSITransitions(t *testing.T) {
	cur, prev := 59, 58

	t.Run("entering oversold fires", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.RSI[prev], s.RSI[cur] = model.Val(35), model.Val(25)
		e.CheckAll("BTC", s, nil)
		if st.Len() != 1 {
			t.Fatalf("got %d alerts, want 1", st.Len())
		}
		a := st.All()[0]
		if a.Type != model.AlertBuy || a.Level != model.LevelMedium {
			t.Errorf("got %s/%s, want BUY/MEDIUM", a.Type, a.Level)
		}
		if a.Asset != "BTC" {
			t.Errorf("asset = %q", a.Asset)
		}
		if !a.Price.Valid || a.Price.V != 100 {
			t.Errorf("price = %+v, want valid 100", a.Price)
		}
	})

	t.Run("staying oversold does not fire", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.RSI[prev], s.RSI[cur] = model.Val(25), model.Val(20)
		e.CheckAll("BTC", s, nil)
		if st.Len() != 0 {
			t.Errorf("persisting condition re-alerted: %d alerts", st.Len())
		}
	})

	t.Run("entering overbought fires sell", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.RSI[prev], s.RSI[cur] = model.Val(65), model.Val(75)
		e.CheckAll("ETH", s, nil)
		if st.Len() != 1 {
			t.Fatalf("got %d alerts, want 1", st.Len())
		}
		if a := st.All()[0]; a.Type != model.AlertSell || a.Level != model.LevelMedium {
			t.Errorf("got %s/%s, want SELL/MEDIUM", a.Type, a.Level)
		}
	})

	t.Run("undefined previous bar does not fire", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.RSI[cur] = model.Val(25)
		e.CheckAll("BTC", s, nil)
		if st.Len() != 0 {
			t.Errorf("undefined prev RSI should skip the rule, got %d alerts", st.Len())
		}
	})
}

func TestCheckAll_MovingAverageCrosses(t *testing.T) {
	cur, prev := 59, 58

	t.Run("golden cross", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.MA20[prev], s.MA50[prev] = model.Val(95), model.Val(96)
		s.MA20[cur], s.MA50[cur] = model.Val(97), model.Val(96)
		e.CheckAll("BTC", s, nil)
		if st.Len() != 1 {
			t.Fatalf("got %d alerts, want 1", st.Len())
		}
		if a := st.All()[0]; a.Type != model.AlertBuy || a.Level != model.LevelMedium {
			t.Errorf("got %s/%s, want BUY/MEDIUM", a.Type, a.Level)
		}
	})

	t.Run("death cross", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.MA20[prev], s.MA50[prev] = model.Val(97), model.Val(96)
		s.MA20[cur], s.MA50[cur] = model.Val(95), model.Val(96)
		e.CheckAll("BTC", s, nil)
		if st.Len() != 1 {
			t.Fatalf("got %d alerts, want 1", st.Len())
		}
		if a := st.All()[0]; a.Type != model.AlertSell {
			t.Errorf("got %s, want SELL", a.Type)
		}
	})

	t.Run("already above does not re-fire", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.MA20[prev], s.MA50[prev] = model.Val(97), model.Val(96)
		s.MA20[cur], s.MA50[cur] = model.Val(98), model.Val(96)
		e.CheckAll("BTC", s, nil)
		if st.Len() != 0 {
			t.Errorf("no crossing, got %d alerts", st.Len())
		}
	})
}

func TestCheckAll_MACDCrossSeverity(t *testing.T) {
	cur, prev := 59, 58
	e, st := newTestEvaluator()
	s := evalSeries(60, 100)
	s.MACD[prev], s.SignalLine[prev] = model.Val(-0.5), model.Val(0)
	s.MACD[cur], s.SignalLine[cur] = model.Val(0.5), model.Val(0)
	e.CheckAll("BTC", s, nil)
	if st.Len() != 1 {
		t.Fatalf("got %d alerts, want 1", st.Len())
	}
	if a := st.All()[0]; a.Level != model.LevelLow {
		t.Errorf("MACD cross severity = %s, want LOW", a.Level)
	}
}

func TestCheckAll_BollingerBreaches(t *testing.T) {
	cur, prev := 59, 58

	t.Run("drop through lower band", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.Bars[prev].Close = 106
		s.BBLower[prev], s.BBLower[cur] = model.Val(105), model.Val(105)
		// current close 100 < 105, previous 106 >= 105
		e.CheckAll("BTC", s, nil)
		if st.Len() != 1 {
			t.Fatalf("got %d alerts, want 1", st.Len())
		}
		if a := st.All()[0]; a.Type != model.AlertBuy {
			t.Errorf("got %s, want BUY", a.Type)
		}
	})

	t.Run("break above upper band", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.Bars[prev].Close = 94
		s.BBUpper[prev], s.BBUpper[cur] = model.Val(95), model.Val(95)
		e.CheckAll("BTC", s, nil)
		if st.Len() != 1 {
			t.Fatalf("got %d alerts, want 1", st.Len())
		}
		if a := st.All()[0]; a.Type != model.AlertSell {
			t.Errorf("got %s, want SELL", a.Type)
		}
	})
}

func TestCheckAll_PriceLevels(t *testing.T) {
	levels := &PriceLevels{Support: 100, Resistance: 110}

	tests := []struct {
		name      string
		close     float64
		wantCount int
		wantWord  string
	}{
		{"at inclusive edge of resistance zone", 109, 1, "resistance"},
		{"at inclusive edge of support zone", 101, 1, "support"},
		{"just outside both zones", 108, 0, ""},
		{"mid range", 105, 0, ""},
		{"exactly at support", 100, 0, ""},
		{"exactly at resistance", 110, 0, ""},
		{"outside the range", 112, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, st := newTestEvaluator()
			s := evalSeries(60, tt.close)
			e.CheckAll("AAPL", s, levels)
			if st.Len() != tt.wantCount {
				t.Fatalf("close %.0f: got %d alerts, want %d", tt.close, st.Len(), tt.wantCount)
			}
			if tt.wantCount == 1 {
				a := st.All()[0]
				if a.Type != model.AlertPriceLevel || a.Level != model.LevelHigh {
					t.Errorf("got %s/%s, want PRICE_LEVEL/HIGH", a.Type, a.Level)
				}
				if !strings.Contains(a.Message, tt.wantWord) {
					t.Errorf("message %q should mention %s", a.Message, tt.wantWord)
				}
			}
		})
	}
}

func TestCheckAll_PriceLevelsDegenerateRange(t *testing.T) {
	e, st := newTestEvaluator()
	s := evalSeries(60, 100)
	e.CheckAll("AAPL", s, &PriceLevels{Support: 100, Resistance: 100})
	if st.Len() != 0 {
		t.Errorf("zero-width range must not alert, got %d", st.Len())
	}
}

func TestCheckAll_PriceLevelsDerivedFromHistory(t *testing.T) {
	e, st := newTestEvaluator()
	s := evalSeries(60, 100)
	// Trailing 50-bar range 90..110 (zone 2); current close 109 approaches
	// the high.
	for i := 10; i < 60; i++ {
		s.Bars[i].High = 110
		s.Bars[i].Low = 90
	}
	s.Bars[59].Close = 109
	e.CheckAll("AAPL", s, nil)
	if st.Len() != 1 {
		t.Fatalf("got %d alerts, want 1", st.Len())
	}
	if a := st.All()[0]; !strings.Contains(a.Message, "resistance") {
		t.Errorf("message %q should mention resistance", a.Message)
	}
}

func TestCheckAll_Volatility(t *testing.T) {
	cur := 59

	t.Run("extreme ATR fires critical", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.ATR[cur] = model.Val(60) // 60% of price
		e.CheckAll("DOGE", s, nil)
		if st.Len() != 1 {
			t.Fatalf("got %d alerts, want 1", st.Len())
		}
		if a := st.All()[0]; a.Type != model.AlertVolatility || a.Level != model.LevelCritical {
			t.Errorf("got %s/%s, want VOLATILITY/CRITICAL", a.Type, a.Level)
		}
	})

	t.Run("moderate ATR is quiet", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 100)
		s.ATR[cur] = model.Val(40)
		e.CheckAll("DOGE", s, nil)
		if st.Len() != 0 {
			t.Errorf("got %d alerts, want 0", st.Len())
		}
	})

	t.Run("non-positive close never fires", func(t *testing.T) {
		e, st := newTestEvaluator()
		s := evalSeries(60, 0)
		s.ATR[cur] = model.Val(60)
		e.CheckAll("DOGE", s, nil)
		if st.Len() != 0 {
			t.Errorf("close 0 must give ratio 0, got %d alerts", st.Len())
		}
	})
}

func TestCheckAll_EmissionOrder(t *testing.T) {
	cur, prev := 59, 58
	e, st := newTestEvaluator()
	s := evalSeries(60, 109)
	// Arm one rule per group: RSI oversold (buy), death cross (sell),
	// proximity to resistance, extreme ATR.
	s.RSI[prev], s.RSI[cur] = model.Val(35), model.Val(25)
	s.MA20[prev], s.MA50[prev] = model.Val(97), model.Val(96)
	s.MA20[cur], s.MA50[cur] = model.Val(95), model.Val(96)
	s.ATR[cur] = model.Val(80)

	e.CheckAll("BTC", s, &PriceLevels{Support: 100, Resistance: 110})

	got := st.All()
	want := []model.AlertType{model.AlertBuy, model.AlertSell, model.AlertPriceLevel, model.AlertVolatility}
	if len(got) != len(want) {
		t.Fatalf("got %d alerts, want %d", len(got), len(want))
	}
	for i, a := range got {
		if a.Type != want[i] {
			t.Errorf("position %d: got %s, want %s", i, a.Type, want[i])
		}
	}
}

func TestCheckAll_RepeatedCallsDuplicate(t *testing.T) {
	cur, prev := 59, 58
	e, st := newTestEvaluator()
	s := evalSeries(60, 100)
	s.RSI[prev], s.RSI[cur] = model.Val(35), model.Val(25)

	e.CheckAll("BTC", s, nil)
	e.CheckAll("BTC", s, nil)
	if st.Len() != 2 {
		t.Errorf("repeated calls on the same series should append again, got %d alerts", st.Len())
	}
}

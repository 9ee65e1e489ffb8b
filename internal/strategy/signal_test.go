package strategy

import (
	"testing"
	"time"

	"MarketPulse/internal/model"
)

// synthSeries builds an n-bar series with every indicator cell undefined
// and every close at the given price. Tests then set just the cells a
// rule reads.
func synthSeries(n int, close float64) *model.IndicatorSeries {
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

func TestGenerate_InsufficientHistory(t *testing.T) {
	if got := Generate(nil); got != model.SignalHold {
		t.Errorf("nil series: got %s, want HOLD", got)
	}
	s := synthSeries(MinBars-1, 100)
	if got := Generate(s); got != model.SignalHold {
		t.Errorf("%d bars: got %s, want HOLD", MinBars-1, got)
	}
}

func TestGenerate_AllUndefined(t *testing.T) {
	s := synthSeries(60, 100)
	if got := Generate(s); got != model.SignalHold {
		t.Errorf("no defined indicators: got %s, want HOLD", got)
	}
}

func TestGenerate_SingleRuleVotes(t *testing.T) {
	cur, prev := 59, 58

	tests := []struct {
		name string
		set  func(s *model.IndicatorSeries)
		want model.Signal
	}{
		{
			"bullish trend alignment",
			func(s *model.IndicatorSeries) {
				s.MA50[cur] = model.Val(90)
				s.MA200[cur] = model.Val(80)
			},
			model.SignalBuy,
		},
		{
			"bearish trend alignment",
			func(s *model.IndicatorSeries) {
				s.MA50[cur] = model.Val(110)
				s.MA200[cur] = model.Val(120)
			},
			model.SignalSell,
		},
		{
			"mixed trend no vote",
			func(s *model.IndicatorSeries) {
				s.MA50[cur] = model.Val(90)
				s.MA200[cur] = model.Val(110)
			},
			model.SignalHold,
		},
		{
			"rsi oversold",
			func(s *model.IndicatorSeries) { s.RSI[cur] = model.Val(25) },
			model.SignalBuy,
		},
		{
			"rsi overbought",
			func(s *model.IndicatorSeries) { s.RSI[cur] = model.Val(75) },
			model.SignalSell,
		},
		{
			"rsi neutral",
			func(s *model.IndicatorSeries) { s.RSI[cur] = model.Val(50) },
			model.SignalHold,
		},
		{
			"macd bullish crossover",
			func(s *model.IndicatorSeries) {
				s.MACD[prev], s.SignalLine[prev] = model.Val(-1), model.Val(0)
				s.MACD[cur], s.SignalLine[cur] = model.Val(1), model.Val(0)
			},
			model.SignalBuy,
		},
		{
			"macd bearish crossover",
			func(s *model.IndicatorSeries) {
				s.MACD[prev], s.SignalLine[prev] = model.Val(1), model.Val(0)
				s.MACD[cur], s.SignalLine[cur] = model.Val(-1), model.Val(0)
			},
			model.SignalSell,
		},
		{
			"macd above but no crossover",
			func(s *model.IndicatorSeries) {
				s.MACD[prev], s.SignalLine[prev] = model.Val(1), model.Val(0)
				s.MACD[cur], s.SignalLine[cur] = model.Val(2), model.Val(0)
			},
			model.SignalHold,
		},
		{
			"close below lower band",
			func(s *model.IndicatorSeries) {
				s.BBLower[cur] = model.Val(105)
				s.BBUpper[cur] = model.Val(120)
			},
			model.SignalBuy,
		},
		{
			"close above upper band",
			func(s *model.IndicatorSeries) {
				s.BBLower[cur] = model.Val(80)
				s.BBUpper[cur] = model.Val(95)
			},
			model.SignalSell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := synthSeries(60, 100)
			tt.set(s)
			if got := Generate(s); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGenerate_TieIsHold(t *testing.T) {
	s := synthSeries(60, 100)
	cur := 59
	// One BUY vote from RSI, one SELL vote from the trend rule.
	s.RSI[cur] = model.Val(25)
	s.MA50[cur] = model.Val(110)
	s.MA200[cur] = model.Val(120)
	if got := Generate(s); got != model.SignalHold {
		t.Errorf("1-1 tie: got %s, want HOLD", got)
	}
}

func TestGenerate_MajorityWins(t *testing.T) {
	s := synthSeries(60, 100)
	cur := 59
	// Two BUY votes against one SELL vote.
	s.RSI[cur] = model.Val(25)
	s.BBLower[cur] = model.Val(105)
	s.BBUpper[cur] = model.Val(120)
	s.MA50[cur] = model.Val(110)
	s.MA200[cur] = model.Val(120)
	if got := Generate(s); got != model.SignalBuy {
		t.Errorf("2-1 buy majority: got %s, want BUY", got)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	s := synthSeries(60, 100)
	s.RSI[59] = model.Val(25)
	first := Generate(s)
	for i := 0; i < 5; i++ {
		if got := Generate(s); got != first {
			t.Fatalf("call %d: got %s, first call gave %s", i, got, first)
		}
	}
}

package forecast

import "errors"

// Predictor estimates future closing prices from historical closes. The
// output is used for display in reports only; indicator and alert logic
// never consume it.
type Predictor interface {
	Predict(closes []float64, days int) ([]float64, error)
	Name() string
}

// DriftPredictor extrapolates the mean daily return over a trailing
// lookback window. A deliberately simple stand-in for a trained model:
// it keeps report output populated without any external dependency.
type DriftPredictor struct {
	Lookback int
}

// NewDriftPredictor creates a predictor with the given lookback window.
func NewDriftPredictor(lookback int) *DriftPredictor {
	if lookback <= 0 {
		lookback = 60
	}
	return &DriftPredictor{Lookback: lookback}
}

func (p *DriftPredictor) Name() string { return "drift" }

// Predict projects the last close forward by the mean daily return of the
// lookback window, compounded per day.
func (p *DriftPredictor) Predict(closes []float64, days int) ([]float64, error) {
	if len(closes) < 2 {
		return nil, errors.New("not enough history to predict")
	}
	if days <= 0 {
		return nil, nil
	}

	start := len(closes) - p.Lookback - 1
	if start < 0 {
		start = 0
	}
	window := closes[start:]

	var sum float64
	var count int
	for i := 1; i < len(window); i++ {
		if window[i-1] == 0 {
			continue
		}
		sum += (window[i] - window[i-1]) / window[i-1]
		count++
	}
	if count == 0 {
		return nil, errors.New("no usable returns in lookback window")
	}
	drift := sum / float64(count)

	out := make([]float64, days)
	price := closes[len(closes)-1]
	for i := 0; i < days; i++ {
		price *= 1 + drift
		out[i] = price
	}
	return out, nil
}

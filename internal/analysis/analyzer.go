package analysis

import (
	"fmt"
	"log"
	"time"

	"MarketPulse/internal/alert"
	"MarketPulse/internal/collector"
	"MarketPulse/internal/config"
	"MarketPulse/internal/forecast"
	"MarketPulse/internal/indicator"
	"MarketPulse/internal/model"
	"MarketPulse/internal/recorder"
	"MarketPulse/internal/strategy"
)

// Analyzer runs the full pipeline for each configured asset: collect,
// compute indicators, generate the signal, evaluate alerts, forecast.
// Each Analyzer owns its alert evaluator and store; run analyses that must
// not share alert state on separate Analyzer instances.
type Analyzer struct {
	Crypto    *collector.Collector
	Stock     *collector.Collector
	Predictor forecast.Predictor
	Evaluator *alert.Evaluator
	Recorder  recorder.Recorder

	PredictionDays int
}

// NewAnalyzer wires an analyzer with a fresh alert store.
func NewAnalyzer(crypto, stock *collector.Collector, pred forecast.Predictor, rec recorder.Recorder, predictionDays int) *Analyzer {
	return &Analyzer{
		Crypto:         crypto,
		Stock:          stock,
		Predictor:      pred,
		Evaluator:      alert.NewEvaluator(alert.NewStore()),
		Recorder:       rec,
		PredictionDays: predictionDays,
	}
}

// Store exposes the session alert store for reporting and pruning.
func (a *Analyzer) Store() *alert.Store { return a.Evaluator.Store() }

// AnalyzeAsset runs the pipeline for one asset.
func (a *Analyzer) AnalyzeAsset(asset config.Asset, assetType string) (*Result, error) {
	col := a.Stock
	if assetType == "crypto" {
		col = a.Crypto
	}

	series, err := col.Collect(asset.Symbol, asset.Name, asset.Days)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", asset.Symbol, err)
	}

	ind := indicator.Analyze(series.Bars)
	sig := strategy.Generate(ind)

	store := a.Evaluator.Store()
	before := store.Len()
	a.Evaluator.CheckAll(asset.Name, ind, nil)
	newAlerts := store.Latest(store.Len() - before)

	closes := series.Closes()
	res := &Result{
		Name:      asset.Name,
		Symbol:    asset.Symbol,
		AssetType: assetType,
		Timestamp: time.Now(),
		Series:    ind,
		Signal:    sig,
		Stats:     statsFromCloses(closes),
		Alerts:    newAlerts,
	}

	// Forecast is display-only; a failed prediction never fails the run.
	if a.Predictor != nil && a.PredictionDays > 0 {
		preds, err := a.Predictor.Predict(closes, a.PredictionDays)
		if err != nil {
			log.Printf("[WARN] prediction failed for %s: %v", asset.Symbol, err)
		} else {
			res.Predictions = preds
		}
	}

	if err := a.record(res); err != nil {
		log.Printf("[ERROR] record analysis for %s: %v", asset.Symbol, err)
	}
	return res, nil
}

// RunAll analyzes every configured asset, logging and skipping failures.
func (a *Analyzer) RunAll(cfg *config.Config) []*Result {
	var results []*Result
	for _, asset := range cfg.Assets.Cryptos {
		res, err := a.AnalyzeAsset(asset, "crypto")
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", asset.Name, err)
			continue
		}
		log.Printf("[INFO] analyzed %s: signal=%s alerts=%d", asset.Name, res.Signal, len(res.Alerts))
		results = append(results, res)
	}
	for _, asset := range cfg.Assets.Stocks {
		res, err := a.AnalyzeAsset(asset, "stock")
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", asset.Name, err)
			continue
		}
		log.Printf("[INFO] analyzed %s: signal=%s alerts=%d", asset.Name, res.Signal, len(res.Alerts))
		results = append(results, res)
	}
	return results
}

func (a *Analyzer) record(res *Result) error {
	s := res.Series
	last := s.Len() - 1
	if last < 0 {
		return nil
	}

	snap := &recorder.RunSnapshot{
		Symbol:        res.Symbol,
		Name:          res.Name,
		AssetType:     res.AssetType,
		Price:         s.Bars[last].Close,
		Signal:        res.Signal,
		MA20:          s.MA20[last],
		MA50:          s.MA50[last],
		MA200:         s.MA200[last],
		RSI:           s.RSI[last],
		MACD:          s.MACD[last],
		SignalLine:    s.SignalLine[last],
		MACDHistogram: s.MACDHistogram[last],
		BBUpper:       s.BBUpper[last],
		BBLower:       s.BBLower[last],
		ATR:           s.ATR[last],
	}
	if len(res.Predictions) > 0 {
		snap.PredictedPrice = model.Val(res.Predictions[len(res.Predictions)-1])
	}

	if err := a.Recorder.RecordRun(snap); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	if len(res.Alerts) > 0 {
		if err := a.Recorder.RecordAlerts(res.Alerts); err != nil {
			return fmt.Errorf("record alerts: %w", err)
		}
	}
	return nil
}

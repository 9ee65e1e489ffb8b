package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"MarketPulse/internal/analysis"
	"MarketPulse/internal/config"
	"MarketPulse/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the periodic analysis and alert-pruning tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *analysis.Analyzer
	Config   *config.Config
	Notifier notifier.Notifier
	Ctx      context.Context

	// Serializes analysis runs: the alert store assumes a single writer,
	// and cron jobs and chat commands both trigger runs.
	runMu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an *analysis.Analyzer, cfg *config.Config, n notifier.Notifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: an,
		Config:   cfg,
		Notifier: n,
		Ctx:      ctx,
	}
}

// RegisterAll registers the analysis and prune tasks.
func (s *Scheduler) RegisterAll() error {
	if _, err := s.Cron.AddFunc(s.Config.Schedule.AnalysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	if _, err := s.Cron.AddFunc(s.Config.Schedule.PruneCron, s.pruneTask); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunAnalysisNow executes the analysis task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunAnalysisNow() {
	s.analysisTask()
}

func (s *Scheduler) analysisTask() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	log.Println("[INFO] running market analysis")
	results := s.Analyzer.RunAll(s.Config)
	if len(results) == 0 {
		s.trySend("❌ Market analysis failed: no asset could be analyzed")
		return
	}

	report := notifier.FormatAnalysisReport(results, s.Analyzer.Store().Report())
	s.trySend(report)
	log.Printf("[INFO] analysis complete: %d assets, %d alerts on record",
		len(results), s.Analyzer.Store().Len())
}

func (s *Scheduler) pruneTask() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	maxAge := time.Duration(s.Config.Alerts.RetentionHours) * time.Hour
	removed := s.Analyzer.Store().Prune(maxAge)
	log.Printf("[INFO] pruned %d alerts older than %s", removed, maxAge)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/run":
		s.analysisTask()
		return ""
	case "/report":
		s.runMu.Lock()
		defer s.runMu.Unlock()
		return s.Analyzer.Store().Report()
	case "/alerts":
		s.runMu.Lock()
		defer s.runMu.Unlock()
		return notifier.FormatAlertDigest(s.Analyzer.Store().Latest(10))
	default:
		return "Available commands:\n• /run — run the analysis now\n• /report — full alert report\n• /alerts — latest alerts"
	}
}

func (s *Scheduler) trySend(text string) {
	type retrier interface {
		SendWithRetry(ctx context.Context, text string, maxRetries int) error
	}
	if r, ok := s.Notifier.(retrier); ok {
		if err := r.SendWithRetry(s.Ctx, text, 3); err != nil {
			log.Printf("[ERROR] send notification: %v", err)
		}
		return
	}
	if err := s.Notifier.Send(text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}

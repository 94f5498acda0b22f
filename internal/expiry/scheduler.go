package expiry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Default schedules: status refresh every hour, full pipeline daily at 6 AM.
const (
	DefaultStatusSchedule   = "0 * * * *"
	DefaultPipelineSchedule = "0 6 * * *"
)

// Scheduler drives the two recurring cadences: a frequent status-only pass
// and a sparse full pipeline run. Overlapping runs, including manual
// triggers, are safe; the engine is idempotent under repetition.
type Scheduler struct {
	runner       *Runner
	clock        Clock
	cron         *cron.Cron
	statusSpec   string
	pipelineSpec string
	mu           sync.Mutex
	running      bool
	logger       *slog.Logger
}

// NewScheduler creates a scheduler with explicit cron specs. Empty specs
// fall back to the defaults; a nil clock falls back to the system clock.
func NewScheduler(runner *Runner, clock Clock, statusSpec, pipelineSpec string) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	if statusSpec == "" {
		statusSpec = DefaultStatusSchedule
	}
	if pipelineSpec == "" {
		pipelineSpec = DefaultPipelineSchedule
	}
	return &Scheduler{
		runner:       runner,
		clock:        clock,
		cron:         cron.New(),
		statusSpec:   statusSpec,
		pipelineSpec: pipelineSpec,
		logger:       slog.Default().With("component", "expiry.scheduler"),
	}
}

// Start validates both cron expressions and begins the schedule. The
// scheduler stops itself when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(s.statusSpec); err != nil {
		return fmt.Errorf("invalid status schedule %q: %w", s.statusSpec, err)
	}
	if _, err := cron.ParseStandard(s.pipelineSpec); err != nil {
		return fmt.Errorf("invalid pipeline schedule %q: %w", s.pipelineSpec, err)
	}

	if _, err := s.cron.AddFunc(s.statusSpec, func() { s.RunStatusUpdate(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule status updates: %w", err)
	}
	if _, err := s.cron.AddFunc(s.pipelineSpec, func() { s.RunPipeline(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule pipeline runs: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("expiry scheduler started",
		"status_schedule", s.statusSpec,
		"pipeline_schedule", s.pipelineSpec,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// RunStatusUpdate executes one status-only pass at the injected clock's
// current time.
func (s *Scheduler) RunStatusUpdate(ctx context.Context) Report {
	report := s.runner.RunStatusUpdate(ctx, s.clock.Now())
	if len(report.Errors) > 0 {
		s.logger.Error("scheduled status update had errors", "errors", report.Errors)
	}
	return report
}

// RunPipeline executes one full pipeline run at the injected clock's
// current time.
func (s *Scheduler) RunPipeline(ctx context.Context) Report {
	report := s.runner.RunPipeline(ctx, s.clock.Now())
	if len(report.Errors) > 0 {
		s.logger.Error("scheduled pipeline run had errors", "errors", report.Errors)
	}
	return report
}

// Stop halts the schedule and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("expiry scheduler stopped")
	}
}

// IsRunning reports whether the schedule is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the earliest upcoming scheduled run, or nil when the
// scheduler is idle.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	for _, e := range entries[1:] {
		if e.Next.Before(next) {
			next = e.Next
		}
	}
	return &next
}

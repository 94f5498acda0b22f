package expiry

import (
	"context"
	"log/slog"
	"time"
)

// Report aggregates the counts and stage-level errors of one pipeline run.
// The pipeline has no overall pass/fail; partial completion is expected.
type Report struct {
	ItemsUpdated         int      `json:"items_updated"`
	NotificationsCreated int      `json:"notifications_created"`
	NotificationsDeleted int64    `json:"notifications_deleted"`
	Errors               []string `json:"errors,omitempty"`
}

// Runner sequences the three pipeline stages: status evaluation,
// notification generation, retention sweep. It is safe to run concurrently
// with itself; repeated work is absorbed by transition-only writes and the
// per-item notification latch.
type Runner struct {
	evaluator *Evaluator
	generator *Generator
	sweeper   *Sweeper
	retention time.Duration
	logger    *slog.Logger
}

func NewRunner(store Store, retention time.Duration) *Runner {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Runner{
		evaluator: NewEvaluator(store),
		generator: NewGenerator(store),
		sweeper:   NewSweeper(store),
		retention: retention,
		logger:    slog.Default().With("component", "expiry.pipeline"),
	}
}

func (r *Runner) Generator() *Generator { return r.generator }

// RunStatusUpdate runs only the evaluator stage. This backs the frequent
// schedule cadence and the lightweight refresh endpoint.
func (r *Runner) RunStatusUpdate(ctx context.Context, now time.Time) Report {
	report := Report{}
	updated, errs := r.evaluator.Run(ctx, now)
	report.ItemsUpdated = updated
	for _, err := range errs {
		report.Errors = append(report.Errors, "status update: "+err.Error())
	}
	return report
}

// RunPipeline executes evaluator, generator, and sweeper in that fixed
// order. A failing stage is logged into the report and does not stop the
// stages after it.
func (r *Runner) RunPipeline(ctx context.Context, now time.Time) Report {
	r.logger.Info("starting pipeline run", "now", now)
	report := Report{}

	updated, errs := r.evaluator.Run(ctx, now)
	report.ItemsUpdated = updated
	for _, err := range errs {
		report.Errors = append(report.Errors, "status update: "+err.Error())
	}

	created, errs := r.generator.Generate(ctx, now)
	report.NotificationsCreated = len(created)
	for _, err := range errs {
		report.Errors = append(report.Errors, "notification generation: "+err.Error())
	}

	deleted, err := r.sweeper.Sweep(ctx, now, r.retention)
	report.NotificationsDeleted = deleted
	if err != nil {
		report.Errors = append(report.Errors, "notification cleanup: "+err.Error())
	}

	r.logger.Info("pipeline run completed",
		"items_updated", report.ItemsUpdated,
		"notifications_created", report.NotificationsCreated,
		"notifications_deleted", report.NotificationsDeleted,
		"errors", len(report.Errors),
	)
	return report
}

package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"smartexpiry/internal/expiry"
	"smartexpiry/internal/queue"
)

// Worker consumes queued pipeline runs. Scheduled runs fire in-process via
// the cron scheduler; this path serves background runs requested over the
// API.
type Worker struct {
	server *asynq.Server
	runner *expiry.Runner
	clock  expiry.Clock
}

func NewWorker(redisAddr string, runner *expiry.Runner, clock expiry.Clock) *Worker {
	if clock == nil {
		clock = expiry.SystemClock()
	}

	redisOpt := asynq.RedisClientOpt{
		Addr: redisAddr,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				queue.QueuePipelineRun: 1,
			},
		},
	)

	return &Worker{
		server: server,
		runner: runner,
		clock:  clock,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.QueuePipelineRun, w.handlePipelineRun)

	slog.Info("Starting worker", "queues", []string{queue.QueuePipelineRun})

	if err := w.server.Start(mux); err != nil {
		return err
	}

	slog.Info("Worker started successfully")

	<-ctx.Done()

	w.server.Stop()
	slog.Info("Worker stopped")
	return nil
}

func (w *Worker) handlePipelineRun(ctx context.Context, t *asynq.Task) error {
	var payload queue.PipelineRunPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	slog.Info("Processing queued pipeline run",
		"requested_by", payload.RequestedBy,
		"reason", payload.Reason,
	)

	report := w.runner.RunPipeline(ctx, w.clock.Now())

	slog.Info("Queued pipeline run completed",
		"requested_by", payload.RequestedBy,
		"items_updated", report.ItemsUpdated,
		"notifications_created", report.NotificationsCreated,
		"notifications_deleted", report.NotificationsDeleted,
		"errors", len(report.Errors),
	)

	// Stage errors live in the report; the task itself completed, so it
	// must not be retried.
	return nil
}

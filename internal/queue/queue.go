package queue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

const (
	QueuePipelineRun = "pipeline_run"
)

type PipelineRunPayload struct {
	RequestedBy int64  `json:"requested_by"`
	Reason      string `json:"reason"`
}

var (
	client    *asynq.Client
	inspector *asynq.Inspector
)

// InitQueue initializes the Redis connection for Asynq.
func InitQueue(redisAddr string) error {
	redisOpt := asynq.RedisClientOpt{
		Addr: redisAddr,
	}

	client = asynq.NewClient(redisOpt)
	inspector = asynq.NewInspector(redisOpt)

	// Test connection
	if err := client.Close(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	// Recreate client after test
	client = asynq.NewClient(redisOpt)

	slog.Info("Successfully initialized task queue")
	return nil
}

// EnqueuePipelineRun queues one full pipeline run to be executed by the
// worker. The synchronous trigger endpoint does not go through here; this
// path exists for fire-and-forget runs with status polling.
func EnqueuePipelineRun(payload PipelineRunPayload) (string, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %v", err)
	}

	task := asynq.NewTask(QueuePipelineRun, payloadBytes)

	info, err := client.Enqueue(task,
		asynq.Queue(QueuePipelineRun),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue task: %v", err)
	}

	return info.ID, nil
}

// GetTaskStatus returns the current status of a queued pipeline run.
func GetTaskStatus(taskID string) (*asynq.TaskInfo, error) {
	info, err := inspector.GetTaskInfo(QueuePipelineRun, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task info: %v", err)
	}
	return info, nil
}

// Close closes the Redis connection.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

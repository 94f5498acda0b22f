package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"smartexpiry/internal/db"
	"smartexpiry/internal/expiry"
	"smartexpiry/internal/queue"
)

// Pipeline is the engine instance the handlers run against, and Store its
// persistence backend; both wired once at startup.
var (
	Pipeline *expiry.Runner
	Store    expiry.Store
)

func InitPipeline(runner *expiry.Runner, store expiry.Store) {
	Pipeline = runner
	Store = store
}

// TriggerBackgroundJobs runs the full pipeline synchronously and returns
// the aggregate report, counts and stage errors both.
func TriggerBackgroundJobs(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	slog.Info("Manual trigger of background jobs", "user_id", userID)

	report := Pipeline.RunPipeline(c.Request().Context(), time.Now())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Background jobs completed",
		"report":  report,
	})
}

// RefreshStatuses runs only the status evaluator.
func RefreshStatuses(c echo.Context) error {
	report := Pipeline.RunStatusUpdate(c.Request().Context(), time.Now())
	return c.JSON(http.StatusOK, report)
}

// CheckExpiringItems runs the generator's per-user pass for the caller.
func CheckExpiringItems(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	user, err := db.GetUserByID(userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	if !user.NotificationSettings.Enabled {
		return c.JSON(http.StatusOK, map[string]string{"message": "Notifications disabled"})
	}

	created, errs := Pipeline.Generator().GenerateForUser(c.Request().Context(), *user, time.Now())
	if len(errs) > 0 {
		slog.Error("Per-user expiry check had errors", "user_id", userID, "errors", errs)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       fmt.Sprintf("%d notifications created", len(created)),
		"notifications": created,
	})
}

// EnqueuePipelineJob queues a background pipeline run and returns its job
// ID for polling.
func EnqueuePipelineJob(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	jobID, err := queue.EnqueuePipelineRun(queue.PipelineRunPayload{
		RequestedBy: userID,
		Reason:      "api",
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to enqueue pipeline run"})
	}

	return c.JSON(http.StatusAccepted, map[string]string{"job_id": jobID})
}

// GetJobStatus reports the state of a queued pipeline run.
func GetJobStatus(c echo.Context) error {
	jobID := c.Param("id")

	info, err := queue.GetTaskStatus(jobID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Job not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"job_id": info.ID,
		"state":  info.State.String(),
		"queue":  info.Queue,
	})
}

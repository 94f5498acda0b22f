package expiry

import (
	"context"
	"strings"
	"testing"
	"time"

	"smartexpiry/internal/models"
)

func TestRunPipeline_FullRun(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store.addUser(testUser(1, 3))
	store.addItem(models.Item{ID: 10, Name: "milk", AddedBy: 1, ExpiryDate: now.AddDate(0, 0, -1)})  // newly expired, unlatched
	store.addItem(models.Item{ID: 11, Name: "bread", AddedBy: 1, ExpiryDate: now.AddDate(0, 0, 2)})  // in window
	store.addItem(models.Item{ID: 12, Name: "honey", AddedBy: 1, ExpiryDate: now.AddDate(0, 0, 90)}) // far out
	store.addNotification(models.Notification{ID: "stale", UserID: 1, Read: true, CreatedAt: now.AddDate(0, 0, -45)})

	runner := NewRunner(store, DefaultRetention)
	report := runner.RunPipeline(context.Background(), now)

	if len(report.Errors) != 0 {
		t.Fatalf("Unexpected errors: %v", report.Errors)
	}
	if report.ItemsUpdated != 1 {
		t.Errorf("Expected 1 item status update, got %d", report.ItemsUpdated)
	}
	if report.NotificationsCreated != 2 {
		t.Errorf("Expected 2 notifications, got %d", report.NotificationsCreated)
	}
	if report.NotificationsDeleted != 1 {
		t.Errorf("Expected 1 swept notification, got %d", report.NotificationsDeleted)
	}

	// The generator must see the evaluator's fresh status.
	if !store.item(10).IsExpired {
		t.Error("Item 10 should be flagged expired before generation")
	}
	if !store.item(10).NotificationSent || !store.item(11).NotificationSent {
		t.Error("Both qualifying items should be latched")
	}
	if store.item(12).NotificationSent {
		t.Error("Item outside the window must not be latched")
	}
}

func TestRunPipeline_RepeatedRunIsHarmless(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store.addUser(testUser(1, 3))
	store.addItem(models.Item{ID: 10, Name: "milk", AddedBy: 1, ExpiryDate: now.AddDate(0, 0, 2)})

	runner := NewRunner(store, DefaultRetention)
	runner.RunPipeline(context.Background(), now)
	report := runner.RunPipeline(context.Background(), now)

	if report.ItemsUpdated != 0 {
		t.Errorf("Second run should update no statuses, got %d", report.ItemsUpdated)
	}
	if report.NotificationsCreated != 0 {
		t.Errorf("Second run should create no notifications, got %d", report.NotificationsCreated)
	}
	if store.notificationCount() != 1 {
		t.Errorf("Expected 1 notification total, got %d", store.notificationCount())
	}
}

func TestRunPipeline_StageFailureDoesNotStopLaterStages(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store.addUser(testUser(1, 3))
	store.addNotification(models.Notification{ID: "stale", UserID: 1, Read: true, CreatedAt: now.AddDate(0, 0, -45)})
	store.failFindItems = true

	runner := NewRunner(store, DefaultRetention)
	report := runner.RunPipeline(context.Background(), now)

	// Evaluator and generator both fail to load items, but the sweeper
	// still runs and cleans up.
	if report.NotificationsDeleted != 1 {
		t.Errorf("Sweeper should still run after earlier failures, deleted %d", report.NotificationsDeleted)
	}
	if len(report.Errors) != 2 {
		t.Fatalf("Expected 2 stage errors in the report, got %v", report.Errors)
	}
	for _, msg := range report.Errors {
		if !strings.Contains(msg, ":") {
			t.Errorf("Stage error should name its stage: %q", msg)
		}
	}
}

func TestRunStatusUpdate_EvaluatorOnly(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store.addUser(testUser(1, 3))
	store.addItem(models.Item{ID: 10, Name: "milk", AddedBy: 1, ExpiryDate: now.AddDate(0, 0, -1)})

	runner := NewRunner(store, DefaultRetention)
	report := runner.RunStatusUpdate(context.Background(), now)

	if report.ItemsUpdated != 1 {
		t.Errorf("Expected 1 status update, got %d", report.ItemsUpdated)
	}
	if report.NotificationsCreated != 0 || store.notificationCount() != 0 {
		t.Error("Status-only run must not generate notifications")
	}
}

func TestNewRunner_DefaultsRetention(t *testing.T) {
	store := newMemStore()
	runner := NewRunner(store, 0)
	if runner.retention != DefaultRetention {
		t.Errorf("Expected default retention, got %v", runner.retention)
	}
}

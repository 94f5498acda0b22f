package expiry

import (
	"context"
	"testing"
	"time"

	"smartexpiry/internal/models"
)

func TestScheduler_StartStop(t *testing.T) {
	store := newMemStore()
	runner := NewRunner(store, DefaultRetention)
	scheduler := NewScheduler(runner, nil, "", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !scheduler.IsRunning() {
		t.Error("Scheduler should report running after Start")
	}
	if scheduler.NextRun() == nil {
		t.Error("Scheduler should have a next run scheduled")
	}

	scheduler.Stop()
	if scheduler.IsRunning() {
		t.Error("Scheduler should report stopped after Stop")
	}
}

func TestScheduler_InvalidSpecs(t *testing.T) {
	store := newMemStore()
	runner := NewRunner(store, DefaultRetention)

	tests := []struct {
		name         string
		statusSpec   string
		pipelineSpec string
	}{
		{"bad status spec", "not-a-cron", DefaultPipelineSchedule},
		{"bad pipeline spec", DefaultStatusSchedule, "61 * * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := NewScheduler(runner, nil, tt.statusSpec, tt.pipelineSpec)
			if err := scheduler.Start(context.Background()); err == nil {
				t.Error("Start() should reject an invalid cron expression")
				scheduler.Stop()
			}
		})
	}
}

func TestScheduler_RunsUseInjectedClock(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: now}

	store.addUser(testUser(1, 3))
	store.addItem(models.Item{ID: 10, Name: "milk", AddedBy: 1, ExpiryDate: now.AddDate(0, 0, 2)})

	runner := NewRunner(store, DefaultRetention)
	scheduler := NewScheduler(runner, clock, "", "")

	report := scheduler.RunPipeline(context.Background())
	if report.NotificationsCreated != 1 {
		t.Fatalf("Expected 1 notification, got %d", report.NotificationsCreated)
	}

	notifications := store.notificationList()
	if !notifications[0].CreatedAt.Equal(now) {
		t.Errorf("Notification timestamp should come from the injected clock, got %v", notifications[0].CreatedAt)
	}

	// Advancing the fake clock past the warning window changes nothing for
	// the already-latched item.
	clock.now = now.AddDate(0, 0, 10)
	report = scheduler.RunPipeline(context.Background())
	if report.NotificationsCreated != 0 {
		t.Errorf("Latched item must not be re-notified, got %d", report.NotificationsCreated)
	}
}

func TestScheduler_StatusCadenceDoesNotNotify(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: now}

	store.addUser(testUser(1, 3))
	store.addItem(models.Item{ID: 10, Name: "milk", AddedBy: 1, ExpiryDate: now.AddDate(0, 0, -1)})

	runner := NewRunner(store, DefaultRetention)
	scheduler := NewScheduler(runner, clock, "", "")

	report := scheduler.RunStatusUpdate(context.Background())
	if report.ItemsUpdated != 1 {
		t.Errorf("Expected 1 status update, got %d", report.ItemsUpdated)
	}
	if store.notificationCount() != 0 {
		t.Error("Frequent cadence must only refresh statuses")
	}
}

func TestScheduler_StartTwice(t *testing.T) {
	store := newMemStore()
	runner := NewRunner(store, DefaultRetention)
	scheduler := NewScheduler(runner, nil, "", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("First Start() failed: %v", err)
	}
	defer scheduler.Stop()

	if err := scheduler.Start(ctx); err != nil {
		t.Errorf("Second Start() should be a no-op, got %v", err)
	}
}

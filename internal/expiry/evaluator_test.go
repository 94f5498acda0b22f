package expiry

import (
	"context"
	"testing"
	"time"

	"smartexpiry/internal/models"
)

func TestEvaluate_FlagsTransitionsOnly(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	items := []models.Item{
		{ID: 1, Name: "milk", ExpiryDate: now.AddDate(0, 0, -2), IsExpired: false},  // newly expired
		{ID: 2, Name: "bread", ExpiryDate: now.AddDate(0, 0, 3), IsExpired: false},  // still good
		{ID: 3, Name: "cheese", ExpiryDate: now.AddDate(0, 0, -5), IsExpired: true}, // already flagged
		{ID: 4, Name: "juice", ExpiryDate: now.AddDate(0, 0, 1), IsExpired: true},   // expiry pushed out externally
	}

	updated, transitions := Evaluate(items, now)

	if transitions != 2 {
		t.Fatalf("Expected 2 transitions, got %d", transitions)
	}

	byID := map[int64]models.Item{}
	for _, item := range updated {
		byID[item.ID] = item
	}

	if item, ok := byID[1]; !ok || !item.IsExpired {
		t.Errorf("Item 1 should transition to expired, got %+v", item)
	}
	if item, ok := byID[4]; !ok || item.IsExpired {
		t.Errorf("Item 4 should transition back to not expired, got %+v", item)
	}
	if _, ok := byID[2]; ok {
		t.Error("Item 2 is already correct and must not be rewritten")
	}
	if _, ok := byID[3]; ok {
		t.Error("Item 3 is already correct and must not be rewritten")
	}

	for _, item := range updated {
		if !item.LastStatusUpdate.Equal(now) {
			t.Errorf("Item %d LastStatusUpdate not set to now", item.ID)
		}
	}
}

func TestEvaluate_ExpiryEqualNowIsNotExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// expiryDate < now is the expiry condition, so an item expiring at
	// exactly now has not expired yet.
	items := []models.Item{{ID: 1, ExpiryDate: now, IsExpired: false}}
	updated, transitions := Evaluate(items, now)
	if transitions != 0 || len(updated) != 0 {
		t.Errorf("Item expiring exactly now must not transition, got %d updates", transitions)
	}
}

func TestEvaluatorRun_BestEffortWriteback(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store.addItem(models.Item{ID: 1, Name: "milk", ExpiryDate: now.AddDate(0, 0, -1)})
	store.addItem(models.Item{ID: 2, Name: "eggs", ExpiryDate: now.AddDate(0, 0, -1)})
	store.failSaveItem[1] = true

	evaluator := NewEvaluator(store)
	updated, errs := evaluator.Run(context.Background(), now)

	if updated != 1 {
		t.Errorf("Expected 1 saved update, got %d", updated)
	}
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}
	if !store.item(2).IsExpired {
		t.Error("Item 2 should have been updated despite item 1 failing")
	}
}

func TestEvaluatorRun_LoadFailure(t *testing.T) {
	store := newMemStore()
	store.failFindItems = true

	evaluator := NewEvaluator(store)
	updated, errs := evaluator.Run(context.Background(), time.Now())

	if updated != 0 {
		t.Errorf("Expected 0 updates, got %d", updated)
	}
	if len(errs) != 1 {
		t.Errorf("Expected 1 error, got %d", len(errs))
	}
}

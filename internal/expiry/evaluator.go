package expiry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smartexpiry/internal/models"
)

// Evaluate recomputes the expiry flag for each item against now and returns
// the items whose flag changed, with IsExpired and LastStatusUpdate set.
// Items whose cached flag is already correct are left out of the batch so
// callers never rewrite them. Pure function; persistence is the caller's
// problem.
func Evaluate(items []models.Item, now time.Time) ([]models.Item, int) {
	var updated []models.Item
	for _, item := range items {
		expired := item.ExpiryDate.Before(now)
		if expired == item.IsExpired {
			continue
		}
		item.IsExpired = expired
		item.LastStatusUpdate = now
		updated = append(updated, item)
	}
	return updated, len(updated)
}

// Evaluator loads every tracked item, evaluates it, and writes back the
// transitions.
type Evaluator struct {
	store  Store
	logger *slog.Logger
}

func NewEvaluator(store Store) *Evaluator {
	return &Evaluator{
		store:  store,
		logger: slog.Default().With("component", "expiry.evaluator"),
	}
}

// Run evaluates all items as of now. Writeback is best effort: one item's
// save failure is recorded and the rest of the batch continues.
func (e *Evaluator) Run(ctx context.Context, now time.Time) (int, []error) {
	items, err := e.store.FindItems(ctx, ItemFilter{})
	if err != nil {
		return 0, []error{fmt.Errorf("failed to load items: %w", err)}
	}

	updated, _ := Evaluate(items, now)

	var errs []error
	saved := 0
	for i := range updated {
		if err := e.store.SaveItem(ctx, &updated[i]); err != nil {
			e.logger.Error("failed to save item status", "item_id", updated[i].ID, "error", err)
			errs = append(errs, fmt.Errorf("item %d: %w", updated[i].ID, err))
			continue
		}
		saved++
	}

	e.logger.Info("item statuses updated", "updated", saved, "total", len(items))
	return saved, errs
}

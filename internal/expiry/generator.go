package expiry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"smartexpiry/internal/models"
)

// Generator emits at most one notification per item per approach-to-expiry
// window. The item's NotificationSent flag is the dedup latch: the
// notification row is persisted first and the latch second, so a crash
// between the two can at worst produce a duplicate on the next run, never a
// silent loss.
type Generator struct {
	store  Store
	logger *slog.Logger
}

func NewGenerator(store Store) *Generator {
	return &Generator{
		store:  store,
		logger: slog.Default().With("component", "expiry.generator"),
	}
}

// DaysUntilExpiry returns the whole days from now to expiry, rounded up.
// An item expiring right now yields 0; an already-expired item is negative.
func DaysUntilExpiry(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// ExpiryMessage renders the user-facing notification text. Expired items
// get the same template with the literal (possibly non-positive) day count.
func ExpiryMessage(name string, days int) string {
	plural := ""
	if days > 1 {
		plural = "s"
	}
	return fmt.Sprintf("%s expires in %d day%s", name, days, plural)
}

// Generate runs the per-user notification pass for every user whose master
// switch is on. A failure for one user or one item is recorded and the
// batch continues.
func (g *Generator) Generate(ctx context.Context, now time.Time) ([]models.Notification, []error) {
	enabled := true
	users, err := g.store.FindUsers(ctx, UserFilter{NotificationsEnabled: &enabled})
	if err != nil {
		return nil, []error{fmt.Errorf("failed to load users: %w", err)}
	}

	var created []models.Notification
	var errs []error
	for i := range users {
		notifications, userErrs := g.GenerateForUser(ctx, users[i], now)
		created = append(created, notifications...)
		errs = append(errs, userErrs...)
	}

	g.logger.Info("expiry notifications generated", "created", len(created), "users", len(users))
	return created, errs
}

// GenerateForUser finds the user's items inside the warning window
// [now, now+daysBeforeExpiry] that have not yet been notified, plus any
// already-expired items whose latch is still clear, and emits one
// notification each. Items within a user are processed sequentially to
// preserve the notification-before-latch write order.
func (g *Generator) GenerateForUser(ctx context.Context, user models.User, now time.Time) ([]models.Notification, []error) {
	warningDate := now.AddDate(0, 0, user.NotificationSettings.DaysBeforeExpiry)
	notSent := false

	items, err := g.store.FindItems(ctx, ItemFilter{
		AddedBy:            user.ID,
		ExpiringOnOrBefore: &warningDate,
		NotificationSent:   &notSent,
	})
	if err != nil {
		return nil, []error{fmt.Errorf("user %d: failed to load items: %w", user.ID, err)}
	}

	var created []models.Notification
	var errs []error
	for i := range items {
		item := items[i]
		days := DaysUntilExpiry(item.ExpiryDate, now)

		kind := models.NotificationExpiryWarning
		if days <= 0 {
			kind = models.NotificationExpired
		}

		notification := models.Notification{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			ItemID:    item.ID,
			Message:   ExpiryMessage(item.Name, days),
			Type:      kind,
			Read:      false,
			CreatedAt: now,
		}

		if err := g.store.SaveNotification(ctx, &notification); err != nil {
			g.logger.Error("failed to save notification", "user_id", user.ID, "item_id", item.ID, "error", err)
			errs = append(errs, fmt.Errorf("item %d: save notification: %w", item.ID, err))
			continue
		}

		// Latch last: a retry after a crash here duplicates the
		// notification instead of losing it.
		item.NotificationSent = true
		if err := g.store.SaveItem(ctx, &item); err != nil {
			g.logger.Error("failed to latch item", "user_id", user.ID, "item_id", item.ID, "error", err)
			errs = append(errs, fmt.Errorf("item %d: latch: %w", item.ID, err))
		}

		created = append(created, notification)
	}

	return created, errs
}

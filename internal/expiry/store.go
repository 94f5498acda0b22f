package expiry

import (
	"context"
	"time"

	"smartexpiry/internal/models"
)

// ItemFilter narrows FindItems. Zero values mean "no constraint".
type ItemFilter struct {
	AddedBy            int64
	ExpiringOnOrBefore *time.Time
	NotificationSent   *bool
}

// UserFilter narrows FindUsers.
type UserFilter struct {
	ID                   int64
	NotificationsEnabled *bool
}

// NotificationFilter narrows UpdateNotifications and DeleteNotifications.
type NotificationFilter struct {
	UserID        int64
	ItemID        int64
	Read          *bool
	CreatedBefore *time.Time
}

// NotificationPatch is the set of mutable notification fields.
type NotificationPatch struct {
	Read *bool
}

// Store is the persistence contract the expiry engine depends on. Callers
// may only rely on per-record atomicity; there is no cross-record
// transaction. The Postgres implementation lives in internal/db; tests use
// an in-memory implementation.
type Store interface {
	FindItems(ctx context.Context, f ItemFilter) ([]models.Item, error)
	SaveItem(ctx context.Context, item *models.Item) error
	FindUsers(ctx context.Context, f UserFilter) ([]models.User, error)
	SaveNotification(ctx context.Context, n *models.Notification) error
	UpdateNotifications(ctx context.Context, f NotificationFilter, p NotificationPatch) (int64, error)
	DeleteNotifications(ctx context.Context, f NotificationFilter) (int64, error)
}

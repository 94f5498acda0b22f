package expiry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultRetention is how long read notifications are kept.
const DefaultRetention = 30 * 24 * time.Hour

// ErrNegativeRetention is returned before any writes when a caller passes a
// retention duration below zero.
var ErrNegativeRetention = errors.New("retention duration must not be negative")

// Sweeper deletes acknowledged notifications past their retention period.
// Unread notifications are never touched, whatever their age.
type Sweeper struct {
	store  Store
	logger *slog.Logger
}

func NewSweeper(store Store) *Sweeper {
	return &Sweeper{
		store:  store,
		logger: slog.Default().With("component", "expiry.sweeper"),
	}
}

// Sweep hard-deletes every notification that is read and older than
// now-retention, and returns how many were removed.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time, retention time.Duration) (int64, error) {
	if retention < 0 {
		return 0, ErrNegativeRetention
	}

	read := true
	cutoff := now.Add(-retention)
	deleted, err := s.store.DeleteNotifications(ctx, NotificationFilter{
		Read:          &read,
		CreatedBefore: &cutoff,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("old notifications cleaned up", "deleted", deleted, "cutoff", cutoff)
	return deleted, nil
}

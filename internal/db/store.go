package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"smartexpiry/internal/expiry"
	"smartexpiry/internal/models"
)

// Store is the Postgres implementation of expiry.Store. Each call is
// individually atomic; the engine never relies on cross-record
// transactions.
type Store struct {
	db *sqlx.DB
}

func NewStore(database *sqlx.DB) *Store {
	return &Store{db: database}
}

func (s *Store) FindItems(ctx context.Context, f expiry.ItemFilter) ([]models.Item, error) {
	query := `SELECT * FROM items WHERE TRUE`
	var args []interface{}

	if f.AddedBy != 0 {
		args = append(args, f.AddedBy)
		query += fmt.Sprintf(" AND added_by = $%d", len(args))
	}
	if f.ExpiringOnOrBefore != nil {
		args = append(args, *f.ExpiringOnOrBefore)
		query += fmt.Sprintf(" AND expiry_date <= $%d", len(args))
	}
	if f.NotificationSent != nil {
		args = append(args, *f.NotificationSent)
		query += fmt.Sprintf(" AND notification_sent = $%d", len(args))
	}

	var items []models.Item
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}
	return items, nil
}

func (s *Store) SaveItem(ctx context.Context, item *models.Item) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET is_expired = $1,
		    notification_sent = $2,
		    last_status_update = $3
		WHERE id = $4
	`, item.IsExpired, item.NotificationSent, item.LastStatusUpdate, item.ID)
	if err != nil {
		return fmt.Errorf("failed to save item %d: %w", item.ID, err)
	}
	return nil
}

func (s *Store) FindUsers(ctx context.Context, f expiry.UserFilter) ([]models.User, error) {
	query := `SELECT * FROM users WHERE TRUE`
	var args []interface{}

	if f.ID != 0 {
		args = append(args, f.ID)
		query += fmt.Sprintf(" AND id = $%d", len(args))
	}
	if f.NotificationsEnabled != nil {
		args = append(args, *f.NotificationsEnabled)
		query += fmt.Sprintf(" AND notifications_enabled = $%d", len(args))
	}

	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (s *Store) SaveNotification(ctx context.Context, n *models.Notification) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, item_id, message, type, "read", created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.ID, n.UserID, n.ItemID, n.Message, n.Type, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (s *Store) UpdateNotifications(ctx context.Context, f expiry.NotificationFilter, p expiry.NotificationPatch) (int64, error) {
	if p.Read == nil {
		return 0, nil
	}

	args := []interface{}{*p.Read}
	query := `UPDATE notifications SET "read" = $1 WHERE TRUE`
	query, args = appendNotificationFilter(query, args, f)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update notifications: %w", err)
	}
	return result.RowsAffected()
}

func (s *Store) DeleteNotifications(ctx context.Context, f expiry.NotificationFilter) (int64, error) {
	query := `DELETE FROM notifications WHERE TRUE`
	var args []interface{}
	query, args = appendNotificationFilter(query, args, f)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	return result.RowsAffected()
}

func appendNotificationFilter(query string, args []interface{}, f expiry.NotificationFilter) (string, []interface{}) {
	if f.UserID != 0 {
		args = append(args, f.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if f.ItemID != 0 {
		args = append(args, f.ItemID)
		query += fmt.Sprintf(" AND item_id = $%d", len(args))
	}
	if f.Read != nil {
		args = append(args, *f.Read)
		query += fmt.Sprintf(` AND "read" = $%d`, len(args))
	}
	if f.CreatedBefore != nil {
		args = append(args, *f.CreatedBefore)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	return query, args
}

package db

import (
	"fmt"
	"log/slog"

	"smartexpiry/internal/models"
)

func ListNotificationsForUser(userID int64, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var notifications []models.Notification
	err := DB.Select(&notifications, `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead acknowledges one notification, scoped to its owner.
// Returns false when the notification does not exist or belongs to someone
// else.
func MarkNotificationRead(userID int64, notificationID string) (bool, error) {
	result, err := DB.Exec(`
		UPDATE notifications
		SET "read" = TRUE
		WHERE id = $1 AND user_id = $2
	`, notificationID, userID)
	if err != nil {
		slog.Error("Failed to mark notification read", "error", err, "notification_id", notificationID)
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

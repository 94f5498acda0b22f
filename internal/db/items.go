package db

import (
	"fmt"
	"log/slog"

	"smartexpiry/internal/models"
)

func CreateItem(item *models.Item) error {
	err := DB.QueryRow(`
		INSERT INTO items (name, category, expiry_date, qr_code, added_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, is_expired, notification_sent, last_status_update
	`, item.Name, item.Category, item.ExpiryDate, item.QRCode, item.AddedBy,
	).Scan(&item.ID, &item.CreatedAt, &item.IsExpired, &item.NotificationSent, &item.LastStatusUpdate)
	if err != nil {
		slog.Error("Failed to create item", "error", err, "user_id", item.AddedBy)
		return fmt.Errorf("failed to create item: %w", err)
	}

	slog.Info("Item created", "item_id", item.ID, "user_id", item.AddedBy)
	return nil
}

// ListItems returns items newest first, optionally narrowed by a name
// substring and a category.
func ListItems(search, category string) ([]models.Item, error) {
	query := `SELECT * FROM items`
	var args []interface{}
	var where []string

	if search != "" {
		args = append(args, "%"+search+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if category != "" && category != "all" {
		args = append(args, category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	var items []models.Item
	if err := DB.Select(&items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// DeleteItem removes an item; the caller is responsible for deleting its
// notifications. Returns false when no such item exists.
func DeleteItem(id int64) (bool, error) {
	result, err := DB.Exec(`DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		slog.Error("Failed to delete item", "error", err, "item_id", id)
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func DistinctCategories() ([]string, error) {
	var categories []string
	if err := DB.Select(&categories, `SELECT DISTINCT category FROM items ORDER BY category`); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

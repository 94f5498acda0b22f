package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"smartexpiry/internal/db"
	"smartexpiry/internal/expiry"
	"smartexpiry/internal/models"
	"smartexpiry/internal/qr"
)

type CreateItemRequest struct {
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	ExpiryDate time.Time `json:"expiryDate"`
}

func CreateItem(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if req.Name == "" || req.ExpiryDate.IsZero() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name and expiry date are required"})
	}

	category := req.Category
	if category == "" {
		category = "Other"
	}

	user, err := db.GetUserByID(userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
	}

	qrCode, err := qr.DataURL(qr.LabelPayload{
		ItemID:     uuid.New().String(),
		Name:       req.Name,
		Category:   category,
		ExpiryDate: req.ExpiryDate.Format(time.RFC3339),
		AddedBy:    user.Name,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate QR code"})
	}

	item := &models.Item{
		Name:       req.Name,
		Category:   category,
		ExpiryDate: req.ExpiryDate,
		QRCode:     qrCode,
		AddedBy:    userID,
	}
	if err := db.CreateItem(item); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store item"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Item added successfully",
		"item":    item,
	})
}

// GetItems lists items with optional search, category, and status filters.
// The expired flag in the response is always recomputed against now; the
// stored flag is only a transition cache.
func GetItems(c echo.Context) error {
	search := c.QueryParam("search")
	category := c.QueryParam("category")
	status := c.QueryParam("status")

	items, err := db.ListItems(search, category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list items"})
	}

	now := time.Now()
	filtered := make([]models.Item, 0, len(items))
	for _, item := range items {
		item.IsExpired = item.ExpiryDate.Before(now)

		if status != "" {
			days := expiry.DaysUntilExpiry(item.ExpiryDate, now)
			switch status {
			case models.StatusExpired:
				if days >= 0 {
					continue
				}
			case models.StatusExpiringSoon:
				if days < 0 || days > models.ExpiringSoonDays {
					continue
				}
			case models.StatusGood:
				if days <= models.ExpiringSoonDays {
					continue
				}
			}
		}

		filtered = append(filtered, item)
	}

	return c.JSON(http.StatusOK, filtered)
}

func DeleteItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid item ID"})
	}

	// Notifications reference the item; remove them first.
	if _, err := Store.DeleteNotifications(c.Request().Context(), expiry.NotificationFilter{ItemID: id}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete item notifications"})
	}

	deleted, err := db.DeleteItem(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete item"})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

func GetCategories(c echo.Context) error {
	categories, err := db.DistinctCategories()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list categories"})
	}
	return c.JSON(http.StatusOK, categories)
}

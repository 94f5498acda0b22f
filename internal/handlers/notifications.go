package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartexpiry/internal/db"
	"smartexpiry/internal/expiry"
)

func GetNotifications(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	notifications, err := db.ListNotificationsForUser(userID, 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list notifications"})
	}

	return c.JSON(http.StatusOK, notifications)
}

func MarkNotificationRead(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	notificationID := c.Param("id")

	updated, err := db.MarkNotificationRead(userID, notificationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to mark notification read"})
	}
	if !updated {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Notification not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

func MarkAllNotificationsRead(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	unread := false
	read := true
	_, err := Store.UpdateNotifications(c.Request().Context(),
		expiry.NotificationFilter{UserID: userID, Read: &unread},
		expiry.NotificationPatch{Read: &read},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to mark notifications read"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

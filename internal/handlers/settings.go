package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartexpiry/internal/auth"
	"smartexpiry/internal/db"
	"smartexpiry/internal/models"
)

type UpdateSettingsRequest struct {
	NotificationSettings models.NotificationSettings `json:"notificationSettings"`
}

func GetUserSettings(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	user, err := db.GetUserByID(userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"notificationSettings": user.NotificationSettings,
	})
}

func UpdateUserSettings(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := auth.Validate.Struct(req.NotificationSettings); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "daysBeforeExpiry must not be negative"})
	}

	if err := db.UpdateUserSettings(userID, req.NotificationSettings); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update settings"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":              "Settings updated successfully",
		"notificationSettings": req.NotificationSettings,
	})
}

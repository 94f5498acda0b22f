package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"smartexpiry/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// userRow is the flat scan target for the users table; notification
// settings live in dedicated columns.
type userRow struct {
	ID                   int64     `db:"id"`
	Name                 string    `db:"name"`
	Email                string    `db:"email"`
	Password             string    `db:"password"`
	NotificationsEnabled bool      `db:"notifications_enabled"`
	DaysBeforeExpiry     int       `db:"days_before_expiry"`
	EmailNotifications   bool      `db:"email_notifications"`
	SoundEnabled         bool      `db:"sound_enabled"`
	DesktopNotifications bool      `db:"desktop_notifications"`
	CreatedAt            time.Time `db:"created_at"`
}

func (r userRow) toModel() models.User {
	return models.User{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		NotificationSettings: models.NotificationSettings{
			Enabled:              r.NotificationsEnabled,
			DaysBeforeExpiry:     r.DaysBeforeExpiry,
			EmailNotifications:   r.EmailNotifications,
			SoundEnabled:         r.SoundEnabled,
			DesktopNotifications: r.DesktopNotifications,
		},
		CreatedAt: r.CreatedAt,
	}
}

func CreateUser(name, email, hashedPassword string) (*models.User, error) {
	settings := models.DefaultNotificationSettings()
	user := &models.User{
		Name:                 name,
		Email:                email,
		Password:             hashedPassword,
		NotificationSettings: settings,
	}

	err := DB.QueryRow(`
		INSERT INTO users (name, email, password, notifications_enabled, days_before_expiry,
			email_notifications, sound_enabled, desktop_notifications)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, name, email, hashedPassword, settings.Enabled, settings.DaysBeforeExpiry,
		settings.EmailNotifications, settings.SoundEnabled, settings.DesktopNotifications,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func GetUserByEmail(email string) (*models.User, error) {
	var row userRow
	err := DB.Get(&row, `SELECT * FROM users WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user := row.toModel()
	return &user, nil
}

func GetUserByID(id int64) (*models.User, error) {
	var row userRow
	err := DB.Get(&row, `SELECT * FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user := row.toModel()
	return &user, nil
}

func UpdateUserSettings(userID int64, settings models.NotificationSettings) error {
	result, err := DB.Exec(`
		UPDATE users
		SET notifications_enabled = $1,
		    days_before_expiry = $2,
		    email_notifications = $3,
		    sound_enabled = $4,
		    desktop_notifications = $5
		WHERE id = $6
	`, settings.Enabled, settings.DaysBeforeExpiry, settings.EmailNotifications,
		settings.SoundEnabled, settings.DesktopNotifications, userID)
	if err != nil {
		slog.Error("Failed to update user settings", "error", err, "user_id", userID)
		return fmt.Errorf("failed to update user settings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

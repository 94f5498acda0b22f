package models

import "time"

// Notification types.
const (
	NotificationExpiryWarning = "expiry_warning"
	NotificationExpired       = "expired"
)

// Item status values used by the list filter.
const (
	StatusGood         = "good"
	StatusExpiringSoon = "expiring_soon"
	StatusExpired      = "expired"
)

// ExpiringSoonDays is the window used by the dashboard status filter.
const ExpiringSoonDays = 7

type NotificationSettings struct {
	Enabled              bool `json:"enabled"`
	DaysBeforeExpiry     int  `json:"daysBeforeExpiry" validate:"gte=0"`
	EmailNotifications   bool `json:"emailNotifications"`
	SoundEnabled         bool `json:"soundEnabled"`
	DesktopNotifications bool `json:"desktopNotifications"`
}

// DefaultNotificationSettings are applied to new users at signup.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:              true,
		DaysBeforeExpiry:     3,
		EmailNotifications:   false,
		SoundEnabled:         true,
		DesktopNotifications: true,
	}
}

type User struct {
	ID                   int64                `json:"id"`
	Name                 string               `json:"name"`
	Email                string               `json:"email"`
	Password             string               `json:"-"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
	CreatedAt            time.Time            `json:"created_at"`
}

// Item is a tracked perishable. IsExpired is a cache of the last
// evaluation, never authoritative: the truth is always expiry_date < now.
// NotificationSent is a one-shot latch; it is only cleared when the item
// itself is deleted.
type Item struct {
	ID               int64     `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Category         string    `db:"category" json:"category"`
	ExpiryDate       time.Time `db:"expiry_date" json:"expiry_date"`
	QRCode           string    `db:"qr_code" json:"qr_code"`
	AddedBy          int64     `db:"added_by" json:"added_by"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	IsExpired        bool      `db:"is_expired" json:"is_expired"`
	NotificationSent bool      `db:"notification_sent" json:"notification_sent"`
	LastStatusUpdate time.Time `db:"last_status_update" json:"last_status_update"`
}

type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ItemID    int64     `db:"item_id" json:"item_id"`
	Message   string    `db:"message" json:"message"`
	Type      string    `db:"type" json:"type"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

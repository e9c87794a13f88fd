package models

import "time"

// NotificationType is the closed set of social events that fan out.
type NotificationType string

const (
	NotificationFollow NotificationType = "follow"
	NotificationLike   NotificationType = "like"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	return t == NotificationFollow || t == NotificationLike
}

// Notification represents a social-interaction notification (PostgreSQL).
// FromID/ToID are hex user identities from the Mongo side.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	Type      NotificationType `json:"type" gorm:"size:16;index"`
	FromID    string           `json:"from_id" gorm:"size:24;index"`
	ToID      string           `json:"to_id" gorm:"size:24;index"`
	Read      bool             `json:"read" gorm:"default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}

// NotificationView is a notification with the actor expanded to a summary.
type NotificationView struct {
	Notification
	From UserSummary `json:"from"`
}

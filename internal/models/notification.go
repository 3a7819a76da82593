package models

import (
	"time"
)

type NotificationType string

const (
	NotificationEventStatusUpdate   NotificationType = "event_status_update"
	NotificationBookingStatusUpdate NotificationType = "booking_status_update"
	NotificationEventReminder       NotificationType = "event_reminder"
)

// Notification is a pull-model inbox row. It is created by the core as a
// side effect of state transitions and mutated only to mark it read.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	IsRead    bool             `json:"is_read" gorm:"not null;default:false;index"`
	Type      NotificationType `json:"type" gorm:"size:50"`
	RelatedID *uint            `json:"related_id"`

	CreatedAt time.Time `json:"created_at"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

func (Notification) TableName() string {
	return "notifications"
}

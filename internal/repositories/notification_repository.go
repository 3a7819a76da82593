package repositories

import (
	"context"

	"github.com/UCEM-2025/campus-event-service/internal/models"
)

// NotificationRepository interface for the pull-model inbox.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	Update(ctx context.Context, notification *models.Notification) error

	GetByUser(ctx context.Context, userID uint, filters NotificationFilters) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)

	// MarkAllRead flips every unread notification for the user.
	MarkAllRead(ctx context.Context, userID uint) error
}

package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
)

type NotificationPostgreSQL struct {
	db *gorm.DB
}

func NewNotificationPostgreSQL(db *gorm.DB) repositories.NotificationRepository {
	return &NotificationPostgreSQL{db: db}
}

func (n *NotificationPostgreSQL) Create(ctx context.Context, notification *models.Notification) error {
	return n.db.WithContext(ctx).Create(notification).Error
}

func (n *NotificationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := n.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (n *NotificationPostgreSQL) Update(ctx context.Context, notification *models.Notification) error {
	return n.db.WithContext(ctx).Save(notification).Error
}

func (n *NotificationPostgreSQL) GetByUser(ctx context.Context, userID uint, filters repositories.NotificationFilters) ([]*models.Notification, error) {
	var notifications []*models.Notification

	query := n.db.WithContext(ctx).Where("user_id = ?", userID)
	if filters.Unread != nil {
		query = query.Where("is_read = ?", !*filters.Unread)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to get notifications by user: %w", err)
	}
	return notifications, nil
}

func (n *NotificationPostgreSQL) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := n.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (n *NotificationPostgreSQL) MarkAllRead(ctx context.Context, userID uint) error {
	return n.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UCEM-2025/campus-event-service/internal/events"
	"github.com/UCEM-2025/campus-event-service/internal/models"
	"github.com/UCEM-2025/campus-event-service/internal/repositories"
	"github.com/UCEM-2025/campus-event-service/internal/validator"
)

const notificationsTopic = "campus.notifications"

type notificationService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewNotificationService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) NotificationService {
	return &notificationService{
		repo:           repo,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
	}
}

// notify appends an unread inbox row for the user. It is called from
// inside other services' transaction closures so the row commits or rolls
// back with the primary mutation.
func notify(ctx context.Context, repo repositories.Repository, userID uint, message string, ntype models.NotificationType, relatedID *uint) error {
	notification := &models.Notification{
		UserID:    userID,
		Message:   message,
		Type:      ntype,
		RelatedID: relatedID,
	}
	if err := repo.Notification().Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID uint) (*NotificationListResponse, error) {
	var notifications []*models.Notification

	// Viewing the inbox marks everything read; the listing returned still
	// shows which rows were unread at the time of the call.
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		var err error
		notifications, err = tx.Notification().GetByUser(ctx, userID, repositories.NotificationFilters{})
		if err != nil {
			return err
		}
		return tx.Notification().MarkAllRead(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return &NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   0,
	}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.Notification().CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID uint) error {
	notification, err := s.repo.Notification().GetByID(ctx, notificationID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to get notification: %w", err)
	}

	// Hide other users' notifications behind not-found.
	if notification.UserID != userID {
		return ErrNotificationNotFound
	}

	if notification.IsRead {
		return nil
	}

	notification.IsRead = true
	if err := s.repo.Notification().Update(ctx, notification); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) SendBulk(ctx context.Context, req *BulkNotificationRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, userID := range req.UserIDs {
			if err := notify(ctx, tx, userID, req.Message, req.Type, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to send bulk notification: %w", err)
	}

	event := events.NewEvent(events.BulkNotification, map[string]interface{}{
		"user_ids": req.UserIDs,
		"type":     req.Type,
		"message":  req.Message,
	})
	if err := s.eventPublisher.Publish(ctx, notificationsTopic, event); err != nil {
		s.logger.Error("failed to publish bulk notification event", "error", err)
	}

	s.logger.Info("bulk notification sent", "recipients", len(req.UserIDs), "type", req.Type)
	return nil
}
